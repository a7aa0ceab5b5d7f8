// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, bearer tokens and caller identity.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

Passwords shorter than MinPasswordLength are rejected.

# Tokens

Tokens are HS256 JWTs whose subject is the user ID:

	token, err := auth.IssueToken(user.ID, user.Email, secret, ttl, time.Now())
	claims, err := auth.ParseToken(token, secret)

ParseToken rejects other signing methods, expired tokens and tokens without
a subject with ErrInvalidToken.

# Identity

middleware.Authenticate stores the caller in the request context:

	ctx = auth.WithUserID(ctx, claims.Subject)
	userID := auth.UserID(ctx) // "" when unauthenticated

The practice service treats an empty user ID as unauthorized.
*/
package auth
