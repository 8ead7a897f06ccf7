// Package docs registers the OpenAPI description served on /swagger.
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
        "/v1/cities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["simulation"],
                "summary": "Reference hub cities",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.cityResponse"}}}
                }
            }
        },
        "/v1/shipments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "List shipments",
                "parameters": [
                    {"type": "string", "description": "Filter by stage (e.g. out_for_delivery)", "name": "stage", "in": "query"},
                    {"type": "boolean", "description": "Only shipments that are not delivered", "name": "active", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listShipmentsResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "Create a new shipment",
                "parameters": [
                    {"description": "Shipment details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createShipmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.shipmentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/shipments/{tracking_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "Get a shipment by tracking id",
                "parameters": [
                    {"type": "string", "description": "Tracking id (e.g. IT123456789)", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shipmentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/shipments/{tracking_id}/advance": {
            "post": {
                "produces": ["application/json"],
                "tags": ["simulation"],
                "summary": "Generate the next tracking event",
                "parameters": [
                    {"type": "string", "description": "Tracking id", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.advanceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/shipments/{tracking_id}/journey": {
            "get": {
                "produces": ["application/json"],
                "tags": ["simulation"],
                "summary": "Hubs visited by a shipment, oldest first",
                "parameters": [
                    {"type": "string", "description": "Tracking id", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.journeyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/shipments/{tracking_id}/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["simulation"],
                "summary": "Status-change notifications, newest first",
                "parameters": [
                    {"type": "string", "description": "Tracking id", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.notificationsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/shipments/{tracking_id}/watch": {
            "put": {
                "produces": ["application/json"],
                "tags": ["simulation"],
                "summary": "Start simulating a shipment",
                "parameters": [
                    {"type": "string", "description": "Tracking id", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.watchResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["simulation"],
                "summary": "Stop simulating a shipment",
                "parameters": [
                    {"type": "string", "description": "Tracking id", "name": "tracking_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.watchResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.addressRequest": {
            "type": "object",
            "required": ["city_state_zip", "country", "name", "street"],
            "properties": {
                "name": {"type": "string"},
                "street": {"type": "string"},
                "city_state_zip": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "handler.declaredItemRequest": {
            "type": "object",
            "required": ["description", "quantity"],
            "properties": {
                "description": {"type": "string"},
                "quantity": {"type": "integer"},
                "value": {"type": "number"},
                "country_of_origin": {"type": "string"}
            }
        },
        "handler.createShipmentRequest": {
            "type": "object",
            "required": ["destination", "origin", "weight"],
            "properties": {
                "origin": {"$ref": "#/definitions/handler.addressRequest"},
                "destination": {"$ref": "#/definitions/handler.addressRequest"},
                "service": {"type": "string", "enum": ["Standard", "Express", "Overnight", "Same-Day", "Weekend"]},
                "weight": {"type": "string"},
                "dimensions": {"type": "string"},
                "contents": {"type": "string"},
                "declared_items": {"type": "array", "items": {"$ref": "#/definitions/handler.declaredItemRequest"}},
                "insurance_value": {"type": "number"},
                "special_handling": {"type": "array", "items": {"type": "string"}},
                "advanced_options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.trackingEventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timestamp": {"type": "string"},
                "status": {"type": "string"},
                "stage": {"type": "string"},
                "location": {"type": "string"},
                "details": {"type": "string"},
                "handling_partner": {"type": "string"}
            }
        },
        "handler.shipmentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"},
                "stage": {"type": "string"},
                "delivered": {"type": "boolean"},
                "estimated_delivery": {"type": "string"},
                "origin": {"$ref": "#/definitions/handler.addressRequest"},
                "destination": {"$ref": "#/definitions/handler.addressRequest"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/handler.trackingEventResponse"}},
                "service": {"type": "string"},
                "weight": {"type": "string"},
                "dimensions": {"type": "string"},
                "contents": {"type": "string"},
                "insurance_value": {"type": "number"},
                "created_at": {"type": "string"}
            }
        },
        "handler.listShipmentsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.shipmentResponse"}},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "total": {"type": "integer"},
                        "page": {"type": "integer"},
                        "limit": {"type": "integer"},
                        "total_pages": {"type": "integer"}
                    }
                }
            }
        },
        "handler.advanceResponse": {
            "type": "object",
            "properties": {
                "advanced": {"type": "boolean"},
                "event": {"$ref": "#/definitions/handler.trackingEventResponse"},
                "shipment": {"$ref": "#/definitions/handler.shipmentResponse"}
            }
        },
        "handler.cityResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "country": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "handler.journeyResponse": {
            "type": "object",
            "properties": {
                "tracking_id": {"type": "string"},
                "cities": {"type": "array", "items": {"$ref": "#/definitions/handler.cityResponse"}}
            }
        },
        "handler.watchResponse": {
            "type": "object",
            "properties": {
                "tracking_id": {"type": "string"},
                "watching": {"type": "boolean"}
            }
        },
        "handler.notificationsResponse": {
            "type": "object",
            "properties": {
                "tracking_id": {"type": "string"},
                "data": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "title": {"type": "string"},
                            "message": {"type": "string"},
                            "created_at": {"type": "string"},
                            "read": {"type": "boolean"}
                        }
                    }
                }
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
	Title:            "IntelliTrack Tracking Simulator API",
	Description:      "Shipment records with a synthetic tracking-event progression engine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
