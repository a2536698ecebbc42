package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Timetable API",
        "description": "Timetable generation, exam scheduling, seating, and invigilation for an academic campus",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetables", "description": "Timetable lifecycle and views"},
        {"name": "Scheduling", "description": "Session generation, rescheduling, optimization, and audits"},
        {"name": "Exams", "description": "Exam scheduling, seating, and invigilation"},
        {"name": "Courses", "description": "Course catalog and enrollments"},
        {"name": "Professors", "description": "Professor roster and availability"},
        {"name": "Students", "description": "Student roster"},
        {"name": "Rooms", "description": "Room inventory and availability"},
        {"name": "Slots", "description": "Weekly slots and blackout windows"},
        {"name": "Imports", "description": "CSV bulk imports"},
        {"name": "Exports", "description": "CSV and PDF downloads"},
        {"name": "Calendar", "description": "External calendar sync"},
        {"name": "Auth", "description": "Admin token exchange"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange the admin key for a bearer token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/timetables": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List timetables",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Timetables"],
                "summary": "Create a timetable",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/timetables/{id}/generate": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Generate sessions for a timetable",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Missing catalog data"}
                }
            }
        },
        "/timetables/{id}/reschedule": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Re-validate committed sessions against current availability and regenerate",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/timetables/{id}/optimize": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Regenerate and keep the better schedule",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/timetables/{id}/data": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Timetable sessions grouped by day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/timetables/{id}/conflicts": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Audit a committed timetable for conflicts",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exams/generate": {
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule exams for all enrolled courses",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exams/{id}/seating": {
            "post": {
                "tags": ["Exams"],
                "summary": "Plan and commit a seating chart",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK"},
                    "412": {"description": "No room allocations"}
                }
            },
            "get": {
                "tags": ["Exams"],
                "summary": "Committed seating chart",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exams/{id}/invigilation": {
            "post": {
                "tags": ["Exams"],
                "summary": "Assign invigilators round-robin",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
