// Package blog is the synchronization layer between the UI, the in-memory
// stores and the remote API.
//
// Every user action follows the same shape: read the local store, call the
// API once, update the store, publish a notification. No action retries.
// Failures publish a fixed, generic notification and are returned to the
// caller wrapped, so the UI or CLI decides whether to log or ignore them. No
// error is fatal.
//
//	Login       POST /api/login  → save session → set token → SessionStore
//	Restore     session file     → set token → SessionStore
//	Logout      clear file, token and SessionStore
//	LoadPosts   GET /api/blogs   → PostStore.Replace
//	CreatePost  POST /api/blogs  → PostStore.Append → LoadPosts → "A new …"
//	LikePost    PUT /api/blogs/{id} (no body) → PostStore.Update(likes+1)
//	DeletePost  confirm → DELETE /api/blogs/{id} → PostStore.Remove
//	AddComment  POST /api/blogs/{id}/comments → PostStore.Update(+comment)
//	LoadAuthors GET /api/users   → AuthorStore.Replace
package blog
