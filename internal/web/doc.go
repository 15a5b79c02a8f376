// Package web serves the login gate's HTML front end.
//
// HTTP API
//
//	GET /
//	    Landing page with "Sign in" and "Create an Account" buttons.
//
//	GET  /register
//	POST /register   form: username, password
//	    Create an account. Existing usernames and passwords shorter than
//	    four characters are rejected with a retry link.
//
//	GET  /forgot
//	POST /forgot     form: username, new_password
//	    Overwrite the password of an existing account. The old password is
//	    not asked for.
//
//	GET  /login
//	POST /login      form: username, password
//	    On success, a welcome page with a button to the external site.
//
//	GET /logout
//	    302 redirect to /.
//
//	GET /static/*
//	    Files from Options.StaticDir.
//
// Behaviour
//
//   - Every domain outcome, including rejected registrations, resets and
//     logins, is an HTML page with status 200. Missing form fields get 400,
//     unknown paths 404 and storage failures 500.
//   - No session is kept: a successful login only renders the welcome page.
//   - One access-log line is written per request.
package web
