package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HirePulse API",
        "description": "Recruitment pipeline service: jobs, applications, interviews and offers",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication and account bootstrap"},
        {"name": "Candidates", "description": "Candidate profiles, resumes and documents"},
        {"name": "Jobs", "description": "Job postings, the public board and matching"},
        {"name": "Applications", "description": "Applications and pipeline transitions"},
        {"name": "Interviews", "description": "Interview scheduling and evaluations"},
        {"name": "Offers", "description": "Offer lifecycle and approvals"},
        {"name": "Requisitions", "description": "Manpower requisitions"},
        {"name": "Dashboard", "description": "Recruiter overview"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a candidate-portal account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/jobs": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Public job board",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications": {
            "post": {
                "tags": ["Applications"],
                "summary": "Apply for a job",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already applied", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "get": {
                "tags": ["Applications"],
                "summary": "List applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}/status": {
            "put": {
                "tags": ["Applications"],
                "summary": "Move an application through the pipeline",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unsupported status", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/interviews": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Schedule an interview",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/interviews/evaluations": {
            "post": {
                "tags": ["Interviews"],
                "summary": "Submit the panel verdict for an interview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/offers": {
            "post": {
                "tags": ["Offers"],
                "summary": "Release a compensation offer",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/offers/{id}/decision": {
            "post": {
                "tags": ["Offers"],
                "summary": "Accept or decline an offer as the candidate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Offer is already finalized", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/mprs": {
            "post": {
                "tags": ["Requisitions"],
                "summary": "Raise a manpower requisition",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/recruiter": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Recruiter pipeline, interview and offer overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
