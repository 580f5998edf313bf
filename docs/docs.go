// Package docs contiene la especificación OpenAPI generada con swag.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Lista entradas del catálogo de especies",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "difficulty", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Crea una entrada del catálogo",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/catalog/{entryID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Obtiene una entrada del catálogo",
                "parameters": [
                    {"type": "string", "name": "entryID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/plants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Lista las plantas del usuario autenticado",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Registra una planta",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/plants/{plantID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Obtiene una planta",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Actualiza campos de una planta",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["plants"],
                "summary": "Elimina una planta",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/plants/{plantID}/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["care"],
                "summary": "Lista el historial de cuidados de una planta",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true},
                    {"type": "string", "name": "activities", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["care"],
                "summary": "Registra una actividad de cuidado",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/plants/{plantID}/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["care"],
                "summary": "Evalúa la salud derivada de una planta",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true},
                    {"type": "string", "name": "at", "in": "query"},
                    {"type": "string", "name": "tz", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/plants/{plantID}/caretakers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["caretakers"],
                "summary": "Lista los grants de cuidado de una planta",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["caretakers"],
                "summary": "Invita a un cuidador",
                "parameters": [
                    {"type": "string", "name": "plantID", "in": "path", "required": true}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/caretakers/{grantID}/accept": {
            "post": {
                "tags": ["caretakers"],
                "summary": "Acepta una invitación de cuidado",
                "parameters": [
                    {"type": "string", "name": "grantID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/caretakers/{grantID}/revoke": {
            "post": {
                "tags": ["caretakers"],
                "summary": "Revoca un grant de cuidado",
                "parameters": [
                    {"type": "string", "name": "grantID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/me/plants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plants"],
                "summary": "Lista plantas compartidas con el usuario",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/me/caretaking": {
            "get": {
                "produces": ["application/json"],
                "tags": ["caretakers"],
                "summary": "Lista los grants donde el usuario es cuidador",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/me/reminders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["care"],
                "summary": "Recordatorios derivados del usuario, ordenados por urgencia",
                "parameters": [
                    {"type": "string", "name": "at", "in": "query"},
                    {"type": "string", "name": "tz", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Planter Care API",
	Description:      "Registro de plantas, historial de cuidados y motor de recordatorios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
