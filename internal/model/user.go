package model

import "time"

// User roles.  ADMIN manages lockers, users and the reservation sweep;
// CLIENT books lockers for themselves.
const (
    RoleAdmin  = "ADMIN"
    RoleClient = "CLIENT"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool { return s == RoleAdmin || s == RoleClient }

// User represents an application user record as stored in the `users`
// table.  The password hash and the verification code never appear in
// JSON responses; handlers build response types with only the public
// fields.
//
// Fields:
//  ID             – primary key identifier of the user.
//  FirstName      – given name, 1–50 characters.
//  LastName       – family name, 1–50 characters.
//  Email          – unique, stored lowercase.
//  PasswordHash   – bcrypt hashed password (plain length 8–20 enforced
//                   before hashing).
//  Role           – ADMIN or CLIENT.
//  IsEmailVerified – whether the address was confirmed with a code.
//  VerificationCode – pending email-verification or password-reset code;
//                   nil when no code is outstanding.  Codes are single
//                   use and expire 15 minutes after issue.
//  VerificationCodeExpiresAt – expiry of the outstanding code.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
    ID                        uint64     // users.id
    FirstName                 string     // users.first_name
    LastName                  string     // users.last_name
    Email                     string     // users.email
    PasswordHash              string     // users.password_hash
    Role                      string     // users.role
    IsEmailVerified           bool       // users.is_email_verified
    VerificationCode          *string    // users.verification_code (nullable)
    VerificationCodeExpiresAt *time.Time // users.verification_code_expires_at (nullable)
    CreatedAt                 time.Time  // users.created_at
    UpdatedAt                 time.Time  // users.updated_at
}
