// Package docs holds the OpenAPI description served at /swagger. Regenerate
// it from the handler annotations with `go generate` at the module root.
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
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/master/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["master"],
                "summary": "Enter master mode",
                "parameters": [
                    {"description": "Scanned master QR", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.masterLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.masterLoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/master/logout": {
            "post": {
                "tags": ["master"],
                "summary": "Leave master mode",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/master/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["master"],
                "summary": "Master mode status",
                "parameters": [
                    {"type": "boolean", "description": "Verify with the kiosk server", "name": "fresh", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.masterStatusResponse"}}}
            }
        },
        "/v1/permissions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Operator permissions",
                "parameters": [
                    {"type": "string", "description": "Comma-separated setting controls, e.g. reorder,editQty", "name": "controls", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.permissionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Kiosk settings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.settingsResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Save kiosk settings",
                "parameters": [
                    {"description": "Full settings set", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Settings"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.settingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Search SKUs",
                "parameters": [
                    {"type": "string", "description": "Code or name fragment", "name": "q", "in": "query"},
                    {"type": "boolean", "description": "Include deactivated records", "name": "include_inactive", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.skuListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create SKU",
                "parameters": [
                    {"description": "SKU fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SkuDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.SkuRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/catalog/groups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Grouped catalog",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.skuGroupsResponse"}}}
            }
        },
        "/v1/catalog/refresh": {
            "post": {
                "tags": ["catalog"],
                "summary": "Reload catalog",
                "responses": {
                    "204": {"description": "No Content"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/catalog/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Update SKU",
                "parameters": [
                    {"type": "string", "description": "SKU id", "name": "id", "in": "path", "required": true},
                    {"description": "New name and state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateSkuRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SkuRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/reports/preview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Report preview",
                "parameters": [
                    {"type": "string", "description": "employees, sku or shifts", "name": "type", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date_from", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date_to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.previewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/reports/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["reports"],
                "summary": "Report export",
                "parameters": [
                    {"type": "string", "description": "employees, sku or shifts", "name": "type", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date_from", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date_to", "in": "query", "required": true},
                    {"type": "string", "description": "csv (default) or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/reports/save_to_usb": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Save report to USB",
                "parameters": [
                    {"description": "Report parameters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.saveToUSBRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.saveToUSBResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/reports/shift.csv": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["reports"],
                "summary": "Shift CSV",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/reports/workers.csv": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["reports"],
                "summary": "Workers CSV",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/shift-plan/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Import shift plan",
                "parameters": [
                    {"type": "file", "description": "Shift plan file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.importResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Settings": {
            "type": "object",
            "properties": {
                "operator_can_reorder": {"type": "boolean"},
                "operator_can_edit_qty": {"type": "boolean"},
                "operator_can_add_sku_to_shift": {"type": "boolean"},
                "operator_can_remove_sku_from_shift": {"type": "boolean"},
                "operator_can_manual_mode": {"type": "boolean"},
                "operator_can_skip_sku": {"type": "boolean"},
                "operator_can_shift_plan_import": {"type": "boolean"},
                "master_session_timeout_min": {"type": "integer"}
            }
        },
        "domain.PermissionSnapshot": {
            "type": "object",
            "properties": {
                "reorder": {"type": "boolean"},
                "editQty": {"type": "boolean"},
                "addSkuToShift": {"type": "boolean"},
                "removeSkuFromShift": {"type": "boolean"},
                "manualMode": {"type": "boolean"},
                "skipSku": {"type": "boolean"},
                "shiftPlanImport": {"type": "boolean"}
            }
        },
        "domain.SkuDraft": {
            "type": "object",
            "required": ["color_code", "fabric_code", "model_code", "name", "width_cm"],
            "properties": {
                "model_code": {"type": "string"},
                "width_cm": {"type": "integer"},
                "fabric_code": {"type": "string"},
                "color_code": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.SkuRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sku_code": {"type": "string"},
                "model_code": {"type": "string"},
                "width_cm": {"type": "integer"},
                "fabric_code": {"type": "string"},
                "color_code": {"type": "string"},
                "name": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "domain.CatalogGroup": {
            "type": "object",
            "properties": {
                "group_key": {"type": "string"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/domain.SkuRecord"}}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.masterLoginRequest": {
            "type": "object",
            "properties": {"qr_text": {"type": "string"}}
        },
        "handler.masterLoginResponse": {
            "type": "object",
            "properties": {
                "master_id": {"type": "string"},
                "token": {"type": "string"},
                "timeout_min": {"type": "integer"},
                "expires_at": {"type": "string"}
            }
        },
        "handler.masterStatusResponse": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "master_id": {"type": "string"},
                "timeout_min": {"type": "integer"},
                "expires_at": {"type": "string"},
                "verified": {"type": "boolean"},
                "hint": {"type": "string"}
            }
        },
        "handler.permissionsResponse": {
            "type": "object",
            "properties": {
                "snapshot": {"$ref": "#/definitions/domain.PermissionSnapshot"},
                "mutable": {"type": "boolean"},
                "mask": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "handler.settingsResponse": {
            "type": "object",
            "properties": {
                "settings": {"$ref": "#/definitions/domain.Settings"},
                "loaded": {"type": "boolean"},
                "mutable": {"type": "boolean"}
            }
        },
        "handler.skuListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.SkuRecord"}},
                "count": {"type": "integer"}
            }
        },
        "handler.skuGroupsResponse": {
            "type": "object",
            "properties": {
                "groups": {"type": "array", "items": {"$ref": "#/definitions/domain.CatalogGroup"}}
            }
        },
        "handler.updateSkuRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "handler.previewResponse": {
            "type": "object",
            "properties": {
                "rows": {"type": "array", "items": {"type": "object", "additionalProperties": {}}},
                "count": {"type": "integer"}
            }
        },
        "handler.saveToUSBRequest": {
            "type": "object",
            "properties": {
                "report_type": {"type": "string"},
                "date_from": {"type": "string"},
                "date_to": {"type": "string"},
                "format": {"type": "string"}
            }
        },
        "handler.saveToUSBResponse": {
            "type": "object",
            "properties": {"path": {"type": "string"}}
        },
        "handler.importResponse": {
            "type": "object",
            "properties": {"total_items": {"type": "integer"}}
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Kiosk Control API",
	Description:      "Local control plane of the packing kiosk: master mode, operator permissions, SKU catalog and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
