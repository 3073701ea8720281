package handler

// response.go defines the helpers every handler uses to emit the API's
// standard envelope: {"success": true, "data": ...} on the happy path and
// {"success": false, "error": "..."} on failure. It also holds the helpers
// that read the authenticated identity out of the request context, where
// the Protect middleware stored it.

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ok writes a success envelope with the given status code.
func ok(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, echo.Map{"success": true, "data": data})
}

// fail writes an error envelope with the given status code.
func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"success": false, "error": msg})
}

// notFound writes the standard 404 message carrying the requested id.
func notFound(c echo.Context, resource, id string) error {
	return fail(c, 404, fmt.Sprintf("%s not found with id of %s", resource, id))
}

// currentUserID parses the ObjectID of the authenticated user from the
// context. Protect stores the JWT subject claim as a hex string.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	raw, _ := c.Get("user_id").(string)
	return primitive.ObjectIDFromHex(raw)
}

// currentRole returns the authenticated user's role, or "" for guests.
func currentRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
