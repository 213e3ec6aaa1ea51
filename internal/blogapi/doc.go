// Package blogapi provides an HTTP client for the blog-list REST API.
//
// # Overview
//
// The client is a thin I/O boundary: it encodes requests, attaches the bearer
// token where the API requires one and decodes responses into the types in
// types.go. It holds no business logic and never retries.
//
// # Endpoints
//
//   - GET    /api/blogs                list posts
//   - POST   /api/blogs                create post (bearer)
//   - PUT    /api/blogs/{id}           update post (bearer)
//   - DELETE /api/blogs/{id}           delete post (bearer)
//   - POST   /api/blogs/{id}/comments  add comment
//   - POST   /api/login                exchange credentials for a token
//   - GET    /api/users                list authors
//
// # Authentication
//
// SetToken stores the token issued by Login. It is sent as
// "Authorization: Bearer <token>" on post create/update/delete only. Reads,
// comments and login are always anonymous. An empty token sends no header.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: bloglist/<version>
//   - Carry a fresh X-Request-ID (UUID) that is also logged at debug level
//   - Have a 5-second timeout unless WithTimeout overrides it
//
// # Errors
//
// HTTP responses with status >= 400 return *StatusError. Auth failures
// (401/403) also match ErrUnauthorized:
//
//	if errors.Is(err, blogapi.ErrUnauthorized) { ... }
//
// Network and decode failures are wrapped with fmt.Errorf. An empty response
// body is not an error.
//
// # URL Construction
//
//   - ""                       → http://localhost:3003
//   - "localhost:3001"         → http://localhost:3001
//   - "https://blogs.example/" → https://blogs.example
//
// # Thread Safety
//
// Client is safe for concurrent use; the token is guarded by a RWMutex.
package blogapi
