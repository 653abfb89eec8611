package printing

// receiptTemplate lays out one rent receipt. It is rendered against receiptView.
const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Receipt {{.ReceiptNumber}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11px; color: #222; margin: 0; }
  h1 { font-size: 16px; margin: 0 0 4px; }
  .muted { color: #666; }
  .header { border-bottom: 2px solid #222; padding-bottom: 8px; margin-bottom: 10px; }
  .meta td { padding: 2px 8px 2px 0; }
  table.lines { width: 100%; border-collapse: collapse; margin-top: 10px; }
  table.lines th, table.lines td { border-bottom: 1px solid #ddd; padding: 4px 0; text-align: left; }
  table.lines td.amount, table.lines th.amount { text-align: right; }
  .total td { font-weight: bold; border-top: 2px solid #222; border-bottom: none; }
  .status { margin-top: 12px; font-weight: bold; }
  .pending { color: #b45309; }
  .footer { margin-top: 18px; font-size: 9px; }
</style>
</head>
<body>
<div class="header">
  <h1>{{default "Rent Receipt" .PropertyName}}</h1>
  {{if .Address}}<div class="muted">{{.Address}}</div>{{end}}
  {{if .LandlordName}}<div class="muted">Landlord: {{.LandlordName}}</div>{{end}}
</div>

<table class="meta">
  <tr><td>Receipt No.</td><td><strong>{{.ReceiptNumber}}</strong></td></tr>
  <tr><td>Reference</td><td>{{.ReferenceNumber}}</td></tr>
  <tr><td>Date</td><td>{{formatDate .PaymentDate}}</td></tr>
  <tr><td>Period</td><td>{{formatPeriod .Month .Year}}</td></tr>
  <tr><td>Received from</td><td>{{default "-" .TenantName}}{{if .TenantPhone}} ({{.TenantPhone}}){{end}}</td></tr>
  <tr><td>Unit</td><td>{{default "-" .UnitNumber}}</td></tr>
  <tr><td>Payment</td><td>{{label .PaymentType}} via {{label .PaymentMethod}}</td></tr>
</table>

<table class="lines">
  <tr><th>Description</th><th class="amount">Amount</th></tr>
  {{- if .Itemized}}
  {{- if .Rent.IsPositive}}
  <tr><td>Rent</td><td class="amount">{{formatAmount .Rent}}</td></tr>
  {{- end}}
  {{- range .Lines}}
  <tr><td>{{.Name}}{{if .BillingCycle}} <span class="muted">({{label .BillingCycle}})</span>{{end}}</td><td class="amount">{{formatAmount .Amount}}</td></tr>
  {{- end}}
  {{- else}}
  <tr><td>{{default (label .PaymentType) .Description}}</td><td class="amount">{{formatAmount .Amount}}</td></tr>
  {{- end}}
  <tr class="total"><td>Total received</td><td class="amount">{{formatMoney .Amount}}</td></tr>
</table>

{{if .IsConfirmed}}
<div class="status">Confirmed{{if .ConfirmedBy}} by {{.ConfirmedBy}}{{end}}</div>
{{else}}
<div class="status pending">Pending confirmation</div>
{{end}}

<div class="footer muted">Generated {{formatDate .GeneratedAt}}. Keep this receipt for your records.</div>
</body>
</html>
`
