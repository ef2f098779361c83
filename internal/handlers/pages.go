package handlers

import "net/http"

// Placeholder pages for the admin area and login form. The real UI is a
// separate frontend; these exist so the session guard has paths to
// protect when the API runs standalone.

func AdminPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<!doctype html><title>Admin</title><h1>Admin</h1>"))
}

func LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<!doctype html><title>Login</title><h1>Login</h1>"))
}
