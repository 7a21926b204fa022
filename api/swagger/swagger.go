package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DriveDesk Dashboard Gateway",
        "description": "Aggregates the driving-school backend into per-manager dashboard snapshots",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Dashboard", "description": "Snapshot lifecycle and tab views"},
        {"name": "Teachers", "description": "Teacher roster mutations"},
        {"name": "School", "description": "School information"},
        {"name": "Sessions", "description": "Session scheduling"},
        {"name": "Forms", "description": "Stored modal form records"},
        {"name": "Export", "description": "CSV and PDF exports"},
        {"name": "Reference", "description": "Static lookup lists"}
    ],
    "paths": {
        "/states": {
            "get": {
                "tags": ["Reference"],
                "summary": "Wilayas accepted as a school state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session-types": {
            "get": {
                "tags": ["Reference"],
                "summary": "Session types offered by schools",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Current dashboard snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Dashboard"],
                "summary": "Drop the stored dashboard snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/dashboard/refresh": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Refresh dashboard data",
                "description": "Re-reads every dashboard resource. Individual failures degrade to empty slices.",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/views/{tab}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard tab view",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "tab", "in": "path", "required": true, "type": "string", "enum": ["overview", "teachers", "students", "school-info", "analytics", "schedules"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown tab", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/distribution": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Session type distribution",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/teachers": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Add a teacher",
                "description": "An empty body submits the stored teacher form.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/TeacherForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Backend rejected the request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/teachers/{id}": {
            "delete": {
                "tags": ["Teachers"],
                "summary": "Remove a teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "type": "boolean"},
                    {"name": "X-Confirm-Action", "in": "header", "type": "boolean"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/school": {
            "put": {
                "tags": ["School"],
                "summary": "Update school information",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/SchoolForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No school loaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Schedule a session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/SessionForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/forms/{kind}": {
            "get": {
                "tags": ["Forms"],
                "summary": "Current form record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["teacher", "school", "session"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Forms"],
                "summary": "Set one form field",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FormPatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown field or bad value", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Forms"],
                "summary": "Reset a form to its defaults",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/export/{dataset}": {
            "get": {
                "tags": ["Export"],
                "summary": "Export a dashboard dataset",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dataset", "in": "path", "required": true, "type": "string", "enum": ["schedules", "teachers", "students", "analytics"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TeacherForm": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "date_of_birth": {"type": "string", "format": "date"},
                "gender": {"type": "string", "enum": ["male", "female"]},
                "password": {"type": "string", "description": "Write-only. Never returned in snapshots or form reads."},
                "can_teach_male": {"type": "boolean"},
                "can_teach_female": {"type": "boolean"}
            },
            "required": ["email", "first_name", "last_name", "phone", "gender", "password"]
        },
        "SchoolForm": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "state": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"}
            },
            "required": ["name", "address", "state", "phone", "email"]
        },
        "SessionForm": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "session_type": {"type": "string", "enum": ["theory", "park", "road"]},
                "scheduled_at": {"type": "string"},
                "duration_minutes": {"type": "integer", "minimum": 30, "maximum": 180},
                "location": {"type": "string"}
            },
            "required": ["student_id", "teacher_id", "session_type", "scheduled_at"]
        },
        "ID": {
            "description": "Backend identifier. Integer ids are rendered as JSON numbers, all others as strings.",
            "type": "string",
            "x-nullable": false
        },
        "FormPatchRequest": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "value": {}
            },
            "required": ["field"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
