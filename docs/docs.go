// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/qa_api/main.go
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
        "/api/v1/answers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["answers"],
                "summary": "Answer a question about the user's posts",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "u", "in": "query", "required": true},
                    {"type": "string", "description": "Question", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ResponseRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorRecord"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/domain.ErrorRecord"}}
                }
            }
        },
        "/api/v1/text-answers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["answers"],
                "summary": "Answer a question from post text only",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "u", "in": "query", "required": true},
                    {"type": "string", "description": "Question", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ResponseRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorRecord"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/domain.ErrorRecord"}}
                }
            }
        },
        "/api/v1/merge": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["answers"],
                "summary": "Merge a text and a multimedia response",
                "parameters": [
                    {"description": "Responses to merge", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/router.MergeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ResponseRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.ErrorRecord"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AnswerRecord": {
            "type": "object",
            "properties": {
                "default": {"type": "string"},
                "evidence": {"type": "string"},
                "rank": {"type": "integer"},
                "snippet": {"type": "string"},
                "url": {"type": "string"},
                "vid": {"type": "string"}
            }
        },
        "domain.ErrorMessage": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "domain.ErrorRecord": {
            "type": "object",
            "properties": {
                "Error": {"$ref": "#/definitions/domain.ErrorMessage"}
            }
        },
        "domain.ResponseRecord": {
            "type": "object",
            "properties": {
                "answer_summary": {"type": "string"},
                "answers": {"type": "array", "items": {"$ref": "#/definitions/domain.AnswerRecord"}},
                "highlighted_keyword": {"type": "array", "items": {"type": "string"}},
                "question_type": {"type": "string"},
                "user_question": {"type": "string"}
            }
        },
        "router.MergeRequest": {
            "type": "object",
            "properties": {
                "mm": {"$ref": "#/definitions/domain.ResponseRecord"},
                "text": {"$ref": "#/definitions/domain.ResponseRecord"}
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
	Title:            "Post QA API",
	Description:      "Answers questions about a user's own media posts",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
