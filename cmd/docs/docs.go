// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with `swag init -g cmd/cpa_backend/main.go -o cmd/docs`.
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
        "/up": {
            "get": {"tags": ["root"], "summary": "Show the status of server.", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"], "summary": "Register new user",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "register", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "User login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/auth/google/exchange-code": {
            "post": {
                "tags": ["auth"], "summary": "Exchange a Google authorization code for an access token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "code", "required": true, "schema": {"$ref": "#/definitions/dto.ExchangeCodeRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Google sign-in disabled"}}
            }
        },
        "/user": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}
        },
        "/currencies": {
            "get": {"tags": ["currencies"], "summary": "List currencies", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/currencies/show/{code}": {
            "get": {
                "tags": ["currencies"], "summary": "Get a currency by code",
                "parameters": [{"type": "string", "in": "path", "name": "code", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Currency not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}
            }
        },
        "/transactions/simulate": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Simulate a currency purchase",
                "parameters": [{"in": "body", "name": "simulation", "required": true, "schema": {"$ref": "#/definitions/dto.SimulateRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Currency not found or rate unavailable"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "List the caller's transactions",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "page"},
                    {"type": "integer", "in": "query", "name": "per_page"},
                    {"type": "string", "in": "query", "name": "currency_code"},
                    {"type": "string", "in": "query", "name": "status"},
                    {"type": "string", "in": "query", "name": "from_date"},
                    {"type": "string", "in": "query", "name": "to_date"}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Purchase foreign currency",
                "parameters": [{"in": "body", "name": "purchase", "required": true, "schema": {"$ref": "#/definitions/dto.PurchaseRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Failed to process transaction"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Get one of the caller's transactions",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Transaction not found"}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "dto.ValidationErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}},
        "dto.RegisterRequest": {"type": "object", "required": ["name", "email", "password", "password_confirmation"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "password_confirmation": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.ExchangeCodeRequest": {"type": "object", "required": ["code"], "properties": {"code": {"type": "string"}}},
        "dto.SimulateRequest": {"type": "object", "required": ["currency_code", "amount"], "properties": {"currency_code": {"type": "string"}, "amount": {"type": "number", "minimum": 50}}},
        "dto.PurchaseRequest": {"type": "object", "required": ["currency_code", "amount"], "properties": {"currency_code": {"type": "string"}, "amount": {"type": "number", "minimum": 50}, "notes": {"type": "string", "maxLength": 255}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Currency Purchase API",
	Description:      "Buy foreign currency at the current quote plus a service fee.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
