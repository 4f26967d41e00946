// Package identity assembles the client configuration handed to the identity
// SDK: the resolved API base URL, OAuth client settings and the provider
// callbacks backed by this module's prompter, key providers and secret store.
//
// The SDK itself is an external collaborator. DeviceKeyRegistrar stands in
// for its device enrolment call.
package identity
