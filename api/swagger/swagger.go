package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Jagrati API",
        "description": "Administration backend for the Jagrati volunteer teaching programme",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and session"},
        {"name": "Join Requests", "description": "Volunteer onboarding workflow"},
        {"name": "Notifications", "description": "Per-user broadcast feed"},
        {"name": "Users", "description": "Account administration"},
        {"name": "Students", "description": "Student roster and profiles"},
        {"name": "Volunteers", "description": "Volunteer roster and profiles"},
        {"name": "Classes", "description": "Class management"},
        {"name": "Subjects", "description": "Subjects and departments"},
        {"name": "Syllabus", "description": "Per class and subject syllabus"},
        {"name": "Attendance", "description": "Daily roll call"},
        {"name": "Events", "description": "Programme schedule"},
        {"name": "Feedback", "description": "Class and student feedback"},
        {"name": "Dashboard", "description": "Programme statistics"},
        {"name": "Exports", "description": "Attendance register exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Dependencies unavailable"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "responses": {
                    "200": {"description": "Access token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Profile"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the current user's password",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Password updated"}
                }
            }
        },
        "/join-requests": {
            "get": {
                "tags": ["Join Requests"],
                "summary": "List join requests",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Join requests"}
                }
            },
            "post": {
                "tags": ["Join Requests"],
                "summary": "Submit a join request (public)",
                "responses": {
                    "201": {"description": "Request recorded"},
                    "409": {"description": "Email already requested"}
                }
            }
        },
        "/join-requests/{id}": {
            "get": {
                "tags": ["Join Requests"],
                "summary": "Get a join request",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Join request"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/join-requests/{id}/process": {
            "put": {
                "tags": ["Join Requests"],
                "summary": "Approve or reject a join request",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Decision recorded"},
                    "409": {"description": "Already processed"},
                    "502": {"description": "Decision recorded but outcome email failed"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List the caller's notifications and mark them seen",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Notifications with pre-read seen state"}
                }
            }
        },
        "/notifications/unseen-count": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Count unseen notifications",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Unseen count"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List user accounts",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Users"}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create a user account",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get a user account",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "User"}}
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update a user account",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Deactivate a user account",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Deactivated"}}
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Students"}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Enroll a student",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Enrolled"}}
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Student detail with attendance summary",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Student"}}
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update a student profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated"}}
            }
        },
        "/students/villages": {
            "get": {
                "tags": ["Students"],
                "summary": "List distinct villages",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Villages"}}
            }
        },
        "/volunteers": {
            "get": {
                "tags": ["Volunteers"],
                "summary": "List volunteers",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Volunteers"}}
            }
        },
        "/volunteers/{id}": {
            "get": {
                "tags": ["Volunteers"],
                "summary": "Volunteer detail with attendance, hobbies and skills",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Volunteer"}}
            }
        },
        "/volunteers/{id}/profile": {
            "put": {
                "tags": ["Volunteers"],
                "summary": "Create or update a volunteer profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Profile"}}
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Classes"}}
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Subjects"}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subjects/{id}/department": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Volunteers teaching a subject",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Department"}}
            }
        },
        "/syllabus": {
            "get": {
                "tags": ["Syllabus"],
                "summary": "List syllabus entries",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Syllabus"}}
            },
            "post": {
                "tags": ["Syllabus"],
                "summary": "Create a syllabus entry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Entry exists for class and subject"}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance entries",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Entries"}}
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record a day's roll call",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Saved and skipped ids"}}
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Events"}}
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create an event and notify staff",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/feedback/classes": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List class feedback",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Feedback"}}
            },
            "post": {
                "tags": ["Feedback"],
                "summary": "Record class feedback and notify staff",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/feedback/students": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Record private student feedback",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Programme-wide statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Statistics"}}
            }
        },
        "/exports/attendance": {
            "post": {
                "tags": ["Exports"],
                "summary": "Generate an attendance register export",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Signed download link"}}
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a generated export",
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired link"}
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
