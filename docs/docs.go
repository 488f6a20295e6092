// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

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
        "/api/confirmations/{token}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["confirmations"],
                "summary": "Apply a pending delete or clear",
                "parameters": [
                    {"type": "string", "description": "Confirmation token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.View"}},
                    "404": {"description": "Unknown token", "schema": {"type": "string"}},
                    "410": {"description": "Expired token", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["confirmations"],
                "summary": "Drop a pending delete or clear",
                "parameters": [
                    {"type": "string", "description": "Confirmation token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Cancelled"},
                    "404": {"description": "Unknown token", "schema": {"type": "string"}},
                    "410": {"description": "Expired token", "schema": {"type": "string"}}
                }
            }
        },
        "/api/filter": {
            "get": {
                "produces": ["application/json"],
                "tags": ["filter"],
                "summary": "Current category filter",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FilterResponse"}}
                }
            },
            "put": {
                "description": "Any value is accepted; an unknown category shows nothing",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["filter"],
                "summary": "Set the category filter",
                "parameters": [
                    {"description": "New filter", "name": "filter", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.View"}},
                    "400": {"description": "Invalid input", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "description": "Newest first. The category parameter does not change the page filter.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Category, empty or all for every product", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductsSearchResult"}}
                }
            },
            "post": {
                "description": "Validates the input and prepends the product to the catalog",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Add a product",
                "parameters": [
                    {"description": "Product to add", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Invalid input", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.FieldError"}}}
                }
            },
            "delete": {
                "description": "Nothing is removed until the returned token is confirmed",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Request the removal of every product",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/catalog.Confirmation"}}
                }
            }
        },
        "/api/products/import": {
            "post": {
                "description": "Columns name, price and category. Rows are added in file order, so the last row ends up first.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Import products via CSV",
                "parameters": [
                    {"type": "file", "description": "CSV file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportProductsResult"}},
                    "400": {"description": "Invalid file", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get product by ID",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "404": {"description": "Not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Nothing is deleted until the returned token is confirmed",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Request the deletion of a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/catalog.Confirmation"}},
                    "400": {"description": "Invalid ID", "schema": {"type": "string"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "description": "Computed over the whole catalog, whatever the filter",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Catalog statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatsResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.Confirmation": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["delete", "clear"]},
                "expires_at": {"type": "string"},
                "product_id": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "catalog.FieldError": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "catalog.Stats": {
            "type": "object",
            "properties": {
                "category_count": {"type": "integer"},
                "count": {"type": "integer"},
                "total_value": {"type": "string"}
            }
        },
        "catalog.View": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}},
                "filter": {"type": "string"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "stats": {"$ref": "#/definitions/catalog.Stats"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.FilterRequest": {
            "type": "object",
            "properties": {
                "filter": {"type": "string"}
            }
        },
        "handlers.FilterResponse": {
            "type": "object",
            "properties": {
                "filter": {"type": "string"}
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "handlers.ImportProductsResult": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/catalog.FieldError"}},
                "imported": {"type": "integer"}
            }
        },
        "handlers.Meta": {
            "type": "object",
            "properties": {
                "total_count": {"type": "integer"}
            }
        },
        "handlers.ProductRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string", "example": "19.99"}
            }
        },
        "handlers.ProductsSearchResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "meta": {"$ref": "#/definitions/handlers.Meta"}
            }
        },
        "handlers.StatsResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}},
                "category_count": {"type": "integer"},
                "count": {"type": "integer"},
                "total_value": {"type": "string"}
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"description": "number or string", "type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ChuZone Catalog API",
	Description:      "Product catalog with filtered views, statistics and confirmed deletions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
