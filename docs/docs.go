// Package docs registers the Swagger spec served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "summary": "Database-backed health check",
                "responses": {
                    "200": {"description": "healthy"},
                    "503": {"description": "dependency unavailable"}
                }
            }
        },
        "/api/ebooks": {
            "get": {
                "summary": "List ebooks",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "default": 20},
                    {"name": "offset", "in": "query", "type": "integer", "default": 0}
                ],
                "responses": {"200": {"description": "paged ebooks"}}
            },
            "post": {
                "summary": "Create an ebook",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "price", "in": "formData", "type": "number", "required": true},
                    {"name": "thumbnail", "in": "formData", "type": "file", "required": true},
                    {"name": "pdfFile", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "created"},
                    "400": {"description": "validation failure or duplicate title"}
                }
            }
        },
        "/api/ebooks/{slug}": {
            "get": {
                "summary": "Get an ebook by slug",
                "parameters": [{"name": "slug", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "ebook"},
                    "404": {"description": "not found"}
                }
            }
        },
        "/api/ebooks/download/{id}": {
            "get": {
                "summary": "Download an ebook PDF",
                "produces": ["application/pdf"],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "PDF stream"},
                    "404": {"description": "not found"},
                    "502": {"description": "storage unreachable"}
                }
            }
        },
        "/api/appointments": {
            "post": {
                "summary": "Book a consultation",
                "consumes": ["application/json"],
                "responses": {
                    "201": {"description": "created with status New"},
                    "400": {"description": "validation failure"}
                }
            }
        },
        "/api/payment/create-order": {
            "post": {
                "summary": "Open a payment order for a purchasable item",
                "consumes": ["application/json"],
                "responses": {
                    "201": {"description": "order with payment session id"},
                    "400": {"description": "price mismatch or unknown item"},
                    "502": {"description": "gateway failure"}
                }
            }
        },
        "/api/payment/webhook": {
            "post": {
                "summary": "Payment gateway callback",
                "responses": {
                    "200": {"description": "acknowledged"},
                    "401": {"description": "signature mismatch"}
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
	Title:            "Wellness API",
	Description:      "Content and commerce backend for a wellness practice.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
