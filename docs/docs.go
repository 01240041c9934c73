// Package docs holds the Swagger 2.0 document served at /api/swagger.
// Keep it in step with the handler annotations (swag init -g cmd/api/main.go).
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
        "/contact": {
            "post": {
                "description": "Validates an inquiry, emails it to the business and acknowledges the submitter. Public endpoint.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "contact"
                ],
                "summary": "Submit Contact Form",
                "parameters": [
                    {
                        "description": "Contact Form Data",
                        "name": "contact",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.ContactRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    },
                    "405": {
                        "description": "Method Not Allowed",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/response.Response"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Liveness plus whether outbound email is configured. Never reveals credentials.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.HealthStatus"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "apperror.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "domain.ContactRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "asha@example.com"
                },
                "inquiryType": {
                    "type": "string",
                    "example": "product"
                },
                "message": {
                    "type": "string",
                    "example": "Please send pricing."
                },
                "name": {
                    "type": "string",
                    "example": "Asha Rao"
                },
                "phone": {
                    "type": "string",
                    "example": "98765 43210"
                }
            }
        },
        "domain.HealthEnvironment": {
            "type": "object",
            "properties": {
                "emailProvider": {
                    "type": "string",
                    "example": "smtp"
                },
                "hasEmailConfig": {
                    "type": "boolean"
                },
                "mode": {
                    "type": "string",
                    "example": "release"
                },
                "rateLimitStore": {
                    "type": "string",
                    "example": "redis"
                }
            }
        },
        "domain.HealthStatus": {
            "type": "object",
            "properties": {
                "environment": {
                    "$ref": "#/definitions/domain.HealthEnvironment"
                },
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2026-10-18T05:00:00Z"
                }
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "customerEmail": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "fields": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/apperror.FieldError"
                    }
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Contact Relay API",
	Description:      "Validates website contact form submissions and relays them by email.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
