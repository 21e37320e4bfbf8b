// Package docs holds the Swagger 2.0 document of the admin API and registers
// it with swag so gin-swagger can serve it. It follows the layout produced by
// `swag init -g cmd/ledgerd/main.go`, which can regenerate it from the
// handler annotations.
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
        "/config": {
            "get": {
                "description": "Returns bonus roles, tag, hashtag, chat lock and registration state. Participant data is not included.",
                "produces": ["application/json"],
                "tags": ["Ledger"],
                "summary": "Giveaway configuration",
                "operationId": "getConfig",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ConfigResponse"}}
                }
            }
        },
        "/participants": {
            "get": {
                "description": "Returns a page of participants ordered by user id. Pages past the end are empty.",
                "produces": ["application/json"],
                "tags": ["Participants"],
                "summary": "List participants (paginated)",
                "operationId": "listParticipants",
                "parameters": [
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 500, "minimum": 1, "type": "integer", "default": 50, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListParticipantsResponse"}}
                }
            }
        },
        "/participants/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Participants"],
                "summary": "Get one participant",
                "operationId": "getParticipant",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ParticipantView"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/participants/{id}/entries": {
            "get": {
                "description": "Returns the draw lines of one participant: the full name once, then one line per ticket.",
                "produces": ["application/json"],
                "tags": ["Participants"],
                "summary": "Draw entries of one participant",
                "operationId": "getParticipantEntries",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntriesResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Ledger"],
                "summary": "Aggregate statistics",
                "operationId": "getStats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.Statistics"}}
                }
            }
        }
    },
    "definitions": {
        "domain.BonusRole": {
            "type": "object",
            "properties": {
                "abbreviation": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.ChatLock": {
            "type": "object",
            "properties": {
                "channel_id": {"type": "integer"},
                "enabled": {"type": "boolean"}
            }
        },
        "domain.HashtagConfig": {
            "type": "object",
            "properties": {
                "locked": {"type": "boolean"},
                "value": {"type": "string"}
            }
        },
        "domain.RoleGrant": {
            "type": "object",
            "properties": {
                "abbreviation": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.TagConfig": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"},
                "quantity": {"type": "integer"},
                "text": {"type": "string"}
            }
        },
        "domain.TicketBreakdown": {
            "type": "object",
            "properties": {
                "base": {"type": "integer"},
                "manual_tag": {"type": "integer"},
                "roles": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/domain.RoleGrant"}
                },
                "tag": {"type": "integer"},
                "tag_text": {"type": "string"}
            }
        },
        "handlers.ConfigResponse": {
            "type": "object",
            "properties": {
                "blacklist_count": {"type": "integer"},
                "bonus_roles": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/domain.BonusRole"}
                },
                "button_message_id": {"type": "array", "items": {"type": "integer"}},
                "chat_lock": {"$ref": "#/definitions/domain.ChatLock"},
                "hashtag": {"$ref": "#/definitions/domain.HashtagConfig"},
                "inscricao_channel": {"type": "integer"},
                "inscricoes_closed": {"type": "boolean"},
                "moderators": {"type": "array", "items": {"type": "integer"}},
                "tag": {"$ref": "#/definitions/domain.TagConfig"}
            }
        },
        "handlers.EntriesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "entries": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "handlers.ListParticipantsResponse": {
            "type": "object",
            "properties": {
                "pagination": {"$ref": "#/definitions/handlers.Pagination"},
                "participants": {"type": "array", "items": {"$ref": "#/definitions/handlers.ParticipantView"}}
            }
        },
        "handlers.Pagination": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "handlers.ParticipantView": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "id": {"type": "string"},
                "last_name": {"type": "string"},
                "message_id": {"type": "integer"},
                "tickets": {"$ref": "#/definitions/domain.TicketBreakdown"},
                "timestamp": {"type": "string"},
                "total_tickets": {"type": "integer"}
            }
        },
        "stats.RoleStats": {
            "type": "object",
            "properties": {
                "abbreviation": {"type": "string"},
                "count": {"type": "integer"},
                "total_tickets": {"type": "integer"}
            }
        },
        "stats.Statistics": {
            "type": "object",
            "properties": {
                "blacklist_count": {"type": "integer"},
                "participants_with_tag": {"type": "integer"},
                "tickets_by_role": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/stats.RoleStats"}
                },
                "total_participants": {"type": "integer"},
                "total_tickets": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Giveaway Ledger Admin API",
	Description:      "Read-only view of the giveaway ticket ledger: statistics, participants, draw entries and configuration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
