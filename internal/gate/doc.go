// Package gate owns the client's authentication session and the screen
// guard derived from it.
//
// A Gate tracks two things: whether a session exists (restored from durable
// storage or established by login) and whether the signed-in user has
// completed their nutrition profile. The combination collapses into a small
// state machine (see State); Decide turns a state plus the current route
// into a redirect decision, so the navigation policy can be tested without
// any UI attached.
//
// The profile check runs against the remote API after every sign-in. While
// it is unresolved the gate reports an indeterminate state and Decide stays
// silent, which is what prevents a freshly signed-in user from flashing
// through the create-profile screen before the check lands. A check failure
// of any kind resolves to "no profile": the client degrades to the
// profile-creation flow rather than surfacing a blocking error.
package gate
