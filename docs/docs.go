// Package docs holds the generated OpenAPI definition served by the
// Swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "summary": "Readiness probe including a database ping",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/healthz": {
            "get": {
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/invoices": {
            "get": {
                "summary": "List invoices (flattened projection)",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Ingest one extraction payload",
                "consumes": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/stats": {
            "get": {
                "summary": "Dashboard headline numbers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/vendors/top10": {
            "get": {
                "summary": "Top vendors by total spend",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/invoice-trends": {
            "get": {
                "summary": "Invoice count and spend per month",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/category-spend": {
            "get": {
                "summary": "Spend per derived category",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/cash-outflow": {
            "get": {
                "summary": "Payment forecast by due month or relative bucket",
                "parameters": [
                    {"name": "mode", "in": "query", "type": "string", "enum": ["month", "relative"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/chat-with-data": {
            "post": {
                "summary": "Answer a natural-language question about the invoice data",
                "consumes": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/invoices/{id}/document": {
            "get": {
                "summary": "Time-limited download URL for the attached document",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "summary": "Attach the scanned source document to an invoice",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Analytics API",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
