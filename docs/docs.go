// Package docs registers the Swagger document served under /swagger.
// Written by hand after the swag template; keep it in step with the handler annotations.
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
        "/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get cart snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpapi.cartResponse"}}
                }
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Clear cart",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add item to cart",
                "parameters": [
                    {"description": "Item", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.addItemReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpapi.cartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/cart/items/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Set item quantity",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "id", "in": "path", "required": true},
                    {"description": "Quantity", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.setQuantityReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpapi.cartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Remove item from cart",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/checkout": {
            "get": {
                "description": "Redirects to the storefront root when the cart is empty.",
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Enter checkout page",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpapi.checkoutViewResponse"}},
                    "302": {"description": "Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Submit order",
                "parameters": [
                    {"description": "Checkout form", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CheckoutFields"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.OrderPayload"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": {}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/regions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["regions"],
                "summary": "Regions of the current checkout visit",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpapi.regionsResponse"}}
                }
            }
        },
        "/regions/load": {
            "post": {
                "description": "Explicit retry after a failed load; never retried automatically.",
                "produces": ["application/json"],
                "tags": ["regions"],
                "summary": "Reload regions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpapi.regionsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httpapi.regionsResponse"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "description": "Ends the session and clears its cart.",
                "tags": ["session"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "domain.CartItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"}
            }
        },
        "domain.CheckoutFields": {
            "type": "object",
            "properties": {
                "card_number": {"type": "string"},
                "city": {"type": "string"},
                "email": {"type": "string"},
                "expiration": {"type": "string"},
                "name": {"type": "string"},
                "neighborhood": {"type": "string"},
                "number": {"type": "string"},
                "postal_code": {"type": "string"},
                "region": {"type": "string"},
                "security_code": {"type": "string"},
                "street": {"type": "string"}
            }
        },
        "domain.OrderPayload": {
            "type": "object",
            "properties": {
                "cart": {"$ref": "#/definitions/domain.CartSnapshot"},
                "created_at": {"type": "string"},
                "customer": {"$ref": "#/definitions/domain.CheckoutFields"},
                "reference": {"type": "string"}
            }
        },
        "domain.CartSnapshot": {
            "type": "object",
            "properties": {
                "discount": {"type": "number"},
                "item_count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.CartItem"}},
                "subtotal": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "domain.Region": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "httpapi.addItemReq": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"}
            }
        },
        "httpapi.cartResponse": {
            "type": "object",
            "properties": {
                "discount": {"type": "number"},
                "display": {"$ref": "#/definitions/httpapi.totalsDisplay"},
                "item_count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.CartItem"}},
                "subtotal": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "httpapi.checkoutViewResponse": {
            "type": "object",
            "properties": {
                "cart": {"$ref": "#/definitions/httpapi.cartResponse"},
                "region_error": {"type": "string"},
                "regions": {"type": "array", "items": {"$ref": "#/definitions/domain.Region"}}
            }
        },
        "httpapi.regionsResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "regions": {"type": "array", "items": {"$ref": "#/definitions/domain.Region"}},
                "state": {"type": "string"}
            }
        },
        "httpapi.setQuantityReq": {
            "type": "object",
            "properties": {
                "quantity": {"type": "integer"}
            }
        },
        "httpapi.totalsDisplay": {
            "type": "object",
            "properties": {
                "discount": {"type": "string"},
                "subtotal": {"type": "string"},
                "total": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9091",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Storefront Checkout API",
	Description:      "Session cart, delivery regions and order checkout.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
