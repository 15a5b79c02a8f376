// Package credential registers users, resets passwords and checks logins.
//
// Every operation is a full load-mutate-save cycle against a
// domain.CredentialStore, serialised by the service so concurrent requests
// cannot lose each other's writes.
package credential
