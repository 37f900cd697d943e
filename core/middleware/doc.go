// Package middleware groups the HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or bearer token).
//   - rayid: assigns a RayID to every request, stores it in the context for
//     logger.WithRayID and echoes it in the X-Ray-ID response header.
package middleware
