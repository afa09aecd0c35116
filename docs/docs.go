// Package docs registers the swagger document of the dashboard API
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
        "/years": {
            "get": {
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "List years",
                "responses": {"200": {"description": "Years and load statistics", "schema": {"type": "object"}}}
            }
        },
        "/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List sessions",
                "responses": {"200": {"description": "Sessions", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.SessionResponse"}}}}
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Create a session",
                "responses": {
                    "201": {"description": "Session created", "schema": {"$ref": "#/definitions/handler.SessionResponse"}},
                    "500": {"description": "Render failure", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Session state", "schema": {"$ref": "#/definitions/handler.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Delete session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/year": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Select year",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Year", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.yearRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session state", "schema": {"$ref": "#/definitions/handler.SessionResponse"}},
                    "400": {"description": "Unknown year", "schema": {"type": "object"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/brush": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Brush the scatter plot",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Rectangle", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Selection"}}
                ],
                "responses": {
                    "200": {"description": "Session state", "schema": {"$ref": "#/definitions/handler.SessionResponse"}},
                    "400": {"description": "Invalid rectangle", "schema": {"type": "object"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Clear the brush",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Session state", "schema": {"$ref": "#/definitions/handler.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/brush/stream": {
            "get": {
                "tags": ["sessions"],
                "summary": "Brush stream",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "snappy for compressed binary frames", "name": "encoding", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/charts/{chart}": {
            "get": {
                "produces": ["image/svg+xml"],
                "tags": ["charts"],
                "summary": "Get chart",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "bar.svg, pie.svg or scatter.svg", "name": "chart", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "SVG document", "schema": {"type": "string"}},
                    "404": {"description": "Session or chart not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/highlight": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Highlight a pie slice",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Trigger label", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.highlightRequest"}}
                ],
                "responses": {
                    "200": {"description": "Highlight result", "schema": {"type": "object"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Reset pie highlight",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Slices", "schema": {"type": "object"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/pie/slices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Pie slices",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Slices and tooltip", "schema": {"type": "object"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        },
        "/sessions/{id}/pie/tooltip": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["charts"],
                "summary": "Pie tooltip event",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Pointer event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.tooltipRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tooltip state", "schema": {"$ref": "#/definitions/render.TooltipState"}},
                    "400": {"description": "Unknown event or slice", "schema": {"type": "object"}},
                    "404": {"description": "Session not found", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "handler.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "createdAt": {"type": "string"},
                "state": {"$ref": "#/definitions/model.Snapshot"}
            }
        },
        "handler.yearRequest": {
            "type": "object",
            "properties": {"year": {"type": "string"}}
        },
        "handler.highlightRequest": {
            "type": "object",
            "properties": {"label": {"type": "string"}}
        },
        "handler.tooltipRequest": {
            "type": "object",
            "properties": {
                "event": {"type": "string"},
                "label": {"type": "string"},
                "x": {"type": "number"},
                "y": {"type": "number"}
            }
        },
        "model.Selection": {
            "type": "object",
            "properties": {
                "x0": {"type": "number"},
                "y0": {"type": "number"},
                "x1": {"type": "number"},
                "y1": {"type": "number"}
            }
        },
        "model.PieAggregate": {
            "type": "object",
            "properties": {
                "BIPOC": {"type": "integer"},
                "White": {"type": "integer"}
            }
        },
        "model.Snapshot": {
            "type": "object",
            "properties": {
                "year": {"type": "string"},
                "years": {"type": "array", "items": {"type": "string"}},
                "brush_state": {"type": "string"},
                "selection": {"$ref": "#/definitions/model.Selection"},
                "year_count": {"type": "integer"},
                "active_count": {"type": "integer"},
                "bar": {"type": "object", "additionalProperties": {"type": "integer"}},
                "dropped": {"type": "integer"},
                "pie": {"$ref": "#/definitions/model.PieAggregate"},
                "highlight": {"type": "string"}
            }
        },
        "render.TooltipState": {
            "type": "object",
            "properties": {
                "visible": {"type": "boolean"},
                "left": {"type": "number"},
                "top": {"type": "number"},
                "html": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Family Enrollment Dashboard API",
	Description:      "Linked bar, pie and scatter charts of family enrollment by year.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
