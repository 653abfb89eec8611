// Package docs holds the Swagger document served at /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/dashboard/summary": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Dashboard"
				],
				"summary": "Dashboard figures for the business",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/expenses": {
			"post": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Expenses"
				],
				"summary": "Record an expense against a property",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Expenses"
				],
				"summary": "List expenses",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/expenses/summary": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Expenses"
				],
				"summary": "Expense totals per category",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/landlords": {
			"post": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Landlords"
				],
				"summary": "Register a landlord",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Landlords"
				],
				"summary": "List landlords",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/notifications": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Notifications"
				],
				"summary": "Notification feed, newest first",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/notifications/read-all": {
			"patch": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Notifications"
				],
				"summary": "Mark notifications as read",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/payments": {
			"post": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Payments"
				],
				"summary": "Record a payment",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/payments/{id}/receipt": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/pdf"
				],
				"tags": [
					"Payments"
				],
				"summary": "Download the payment receipt",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Receipt PDF"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/properties": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Properties"
				],
				"summary": "List properties",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Properties"
				],
				"summary": "Register a property",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/properties/{id}": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Properties"
				],
				"summary": "Get a property with its unit counts",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"put": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Properties"
				],
				"summary": "Update a property",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Properties"
				],
				"summary": "Delete a property without units",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/tenants": {
			"post": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Tenants"
				],
				"summary": "Move a tenant into a vacant unit",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/tenants/{id}/status": {
			"patch": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Tenants"
				],
				"summary": "Change a tenant's status",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/units": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Units"
				],
				"summary": "List units",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Units"
				],
				"summary": "Add a vacant unit to a property",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/units/{id}": {
			"get": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Units"
				],
				"summary": "Get a unit",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"put": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Units"
				],
				"summary": "Update unit details",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Units"
				],
				"summary": "Delete an unoccupied unit",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/units/{id}/status": {
			"patch": {
				"security": [
					{
						"BusinessScope": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Units"
				],
				"summary": "Move a unit to vacant, maintenance or reserved",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.ErrorInfo": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"request_id": {
					"type": "string"
				},
				"details": {
					"type": "array",
					"items": {
						"type": "object"
					}
				}
			}
		},
		"dto.Meta": {
			"type": "object",
			"properties": {
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"page_size": {
					"type": "integer"
				},
				"total_pages": {
					"type": "integer"
				}
			}
		},
		"dto.Response": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {},
				"error": {
					"$ref": "#/definitions/dto.ErrorInfo"
				},
				"meta": {
					"$ref": "#/definitions/dto.Meta"
				}
			}
		}
	},
	"securityDefinitions": {
		"BusinessScope": {
			"type": "apiKey",
			"name": "X-Business-ID",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "RentDesk API",
	Description:      "Multi-tenant property management: units, tenants, rent and utilities.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
