// Package docs holds the swagger document served at /swagger.
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
        "/api/clean": {
            "post": {
                "description": "Strip semicolons, split merged braces and re-indent. Falls back to the placeholder diagram when the result is invalid.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagram"],
                "summary": "Normalise diagram script",
                "parameters": [
                    {
                        "description": "Script",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ScriptRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CleanResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/generate": {
            "post": {
                "description": "Translate a natural-language description into a Mermaid class diagram. A failed remote call still returns 200 with the placeholder diagram and the error field set.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagram"],
                "summary": "Generate class diagram",
                "parameters": [
                    {
                        "description": "Generate request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.GenerateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/render": {
            "post": {
                "description": "Run the rendering chain (mermaid-cli, embedded mermaid.js, image service, raw text) and return the first output that works.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagram"],
                "summary": "Render diagram script",
                "parameters": [
                    {
                        "description": "Script",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ScriptRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RenderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/samples": {
            "get": {
                "produces": ["application/json"],
                "tags": ["diagram"],
                "summary": "List samples",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SamplesResponse"}}
                }
            }
        },
        "/api/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagram"],
                "summary": "Validate diagram script",
                "parameters": [
                    {
                        "description": "Script",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ScriptRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ValidateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.CleanResponse": {
            "type": "object",
            "properties": {
                "mermaid_code": {"type": "string"},
                "message": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        },
        "models.GenerateRequest": {
            "type": "object",
            "required": ["description"],
            "properties": {
                "description": {"type": "string", "example": "Create a User class with name, email attributes and login(), logout() methods"},
                "generation": {"$ref": "#/definitions/models.GenerationParams"},
                "strategy": {"type": "string", "example": "offline"},
                "token": {"description": "Token is the credential for remote strategies. Falls back to the server default when empty.", "type": "string"}
            }
        },
        "models.GenerateResponse": {
            "type": "object",
            "properties": {
                "cached": {"type": "boolean"},
                "error": {"description": "Error is set when generation failed and the placeholder diagram was substituted.", "type": "string"},
                "mermaid_code": {"type": "string"},
                "strategy": {"type": "string"},
                "valid": {"type": "boolean"},
                "validation_message": {"type": "string"}
            }
        },
        "models.GenerationParams": {
            "type": "object",
            "properties": {
                "max_tokens": {"type": "integer", "default": 512, "example": 512},
                "temperature": {"type": "number", "default": 0.7, "example": 0.7}
            }
        },
        "models.RenderResponse": {
            "type": "object",
            "properties": {
                "html": {"type": "string"},
                "id": {"type": "string"},
                "level": {"type": "string"},
                "message": {"type": "string"},
                "strategy": {"type": "string"}
            }
        },
        "models.Sample": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "models.SamplesResponse": {
            "type": "object",
            "properties": {
                "descriptions": {"type": "array", "items": {"$ref": "#/definitions/models.Sample"}},
                "diagrams": {"type": "array", "items": {"$ref": "#/definitions/models.Sample"}}
            }
        },
        "models.ScriptRequest": {
            "type": "object",
            "properties": {
                "mermaid_code": {"type": "string", "example": "classDiagram\n    class User {\n    }"}
            }
        },
        "models.ValidateResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "valid": {"type": "boolean"}
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
	Title:            "UML Generator API",
	Description:      "Generate Mermaid class diagrams from natural-language descriptions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
