// Package docs registers the OpenAPI description served by gin-swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new host account"}
        },
        "/api/v1/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in as a host"}
        },
        "/api/v1/quizzes": {
            "get": {"tags": ["quizzes"], "summary": "List the authenticated host's quizzes"},
            "post": {"tags": ["quizzes"], "summary": "Create a quiz document"}
        },
        "/api/v1/quizzes/catalog": {
            "get": {"tags": ["quizzes"], "summary": "Public quiz catalog (genre, topic, name)"}
        },
        "/api/v1/quizzes/{id}": {
            "get": {"tags": ["quizzes"], "summary": "Get one quiz with its questions"},
            "delete": {"tags": ["quizzes"], "summary": "Delete a quiz"}
        },
        "/api/v1/leaderboard": {
            "get": {"tags": ["leaderboard"], "summary": "Cross-session leaderboard, aggregated by player"}
        },
        "/ws": {
            "get": {"tags": ["websocket"], "summary": "Game event channel"}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5505",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Rahoot API",
	Description:      "Live trivia-quiz backend: host auth, quiz storage, cross-session leaderboard and the realtime game channel",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
