package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the marketplace API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>marketplace-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Endpoints marked with the cookie security scheme answer 401 without a valid
// session cookie; the email-scoped ones answer 403 when ?email differs from the session.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "marketplace-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "session": { "type": "apiKey", "in": "cookie", "name": "token" } },
    "parameters": {
      "id": { "name": "id", "in": "path", "required": true, "schema": { "type": "string", "pattern": "^[0-9a-fA-F]{24}$" } },
      "email": { "name": "email", "in": "query", "required": true, "schema": { "type": "string" } }
    },
    "schemas": {
      "Document": { "type": "object", "additionalProperties": true },
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } },
      "InsertResult": { "type": "object", "properties": { "acknowledged": {"type":"boolean"}, "insertedId": {"type":"string"} } },
      "UpdateResult": { "type": "object", "properties": { "acknowledged": {"type":"boolean"}, "matchedCount": {"type":"integer"}, "modifiedCount": {"type":"integer"}, "upsertedCount": {"type":"integer"}, "upsertedId": {"type":"string","nullable":true} } },
      "DeleteResult": { "type": "object", "properties": { "acknowledged": {"type":"boolean"}, "deletedCount": {"type":"integer"} } }
    }
  },
  "paths": {
    "/jwt": {
      "post": {
        "summary": "Issue a session token for the posted identity and set the token cookie",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Document" } } } },
        "responses": { "200": { "description": "cookie set" }, "400": { "description": "body is not a JSON object" } }
      }
    },
    "/logout": {
      "post": { "summary": "Clear the session cookie", "responses": { "200": { "description": "cookie cleared" } } }
    },
    "/jobs": {
      "get": { "summary": "List all jobs", "responses": { "200": { "description": "array of jobs" } } },
      "post": {
        "summary": "Create a job",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Document" } } } },
        "responses": { "200": { "description": "insert result" }, "400": { "description": "invalid body" } }
      }
    },
    "/jobs/{id}": {
      "parameters": [ { "$ref": "#/components/parameters/id" } ],
      "get": { "summary": "Get one job", "responses": { "200": { "description": "job" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "put": { "summary": "Upsert fields of a job", "responses": { "200": { "description": "update result" }, "400": { "description": "invalid id or body" } } },
      "delete": { "summary": "Delete a job", "responses": { "200": { "description": "delete result" }, "404": { "description": "not found" } } }
    },
    "/jobs-email": {
      "get": {
        "summary": "Jobs posted by the session user",
        "security": [ { "session": [] } ],
        "parameters": [ { "$ref": "#/components/parameters/email" } ],
        "responses": { "200": { "description": "array of jobs" }, "401": { "description": "unauthorized access" }, "403": { "description": "forbidden access" } }
      }
    },
    "/bid": {
      "post": {
        "summary": "Place a bid",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Document" } } } },
        "responses": { "200": { "description": "insert result" }, "400": { "description": "invalid body" } }
      }
    },
    "/bid/{id}": {
      "parameters": [ { "$ref": "#/components/parameters/id" } ],
      "patch": { "summary": "Update fields of a bid", "responses": { "200": { "description": "update result" }, "400": { "description": "invalid id or body" }, "404": { "description": "not found" } } }
    },
    "/myBids": {
      "get": {
        "summary": "Bids placed by the session user",
        "security": [ { "session": [] } ],
        "parameters": [ { "$ref": "#/components/parameters/email" } ],
        "responses": { "200": { "description": "array of bids" }, "401": { "description": "unauthorized access" }, "403": { "description": "forbidden access" } }
      }
    },
    "/bidRequest": {
      "get": {
        "summary": "Bids received on jobs the session user posted",
        "security": [ { "session": [] } ],
        "parameters": [ { "$ref": "#/components/parameters/email" } ],
        "responses": { "200": { "description": "array of bids" }, "401": { "description": "unauthorized access" }, "403": { "description": "forbidden access" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
