package services

import (
	"testing"

	"hisabkitab/internal/models"
	"hisabkitab/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice", "alice@example.com", "hunter22")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Username != "alice" {
			t.Errorf("expected username alice, got %s", user.Username)
		}
		if user.Role != "user" {
			t.Errorf("expected role user, got %s", user.Role)
		}
		if user.Password == "hunter22" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("bob", "bob@example.com", "secret123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("bob", "other@example.com", "secret456")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")

		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", "bob").Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one row for username bob, got %d", count)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "x@example.com", "secret123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("carol", "x@example.com", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUserWithUsername(t, db, "dave")

		got, err := svc.Authenticate("dave", "password123")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		testutil.CreateTestUserWithUsername(t, db, "erin")

		_, err := svc.Authenticate("erin", "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_username_same_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		// Unknown user and wrong password are indistinguishable.
		_, err := svc.Authenticate("nobody", "whatever")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates_email_and_dark_mode", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, "new@example.com", true)
		testutil.AssertNoError(t, err)

		fresh, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if fresh.Email != "new@example.com" {
			t.Errorf("expected updated email, got %s", fresh.Email)
		}
		if !fresh.DarkMode {
			t.Error("expected dark mode enabled")
		}
	})

	t.Run("rejects_email_of_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user1.ID, user2.Email, false)
		testutil.AssertAppError(t, err, "EMAIL_IN_USE")
	})

	t.Run("keeping_own_email_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, user.Email, true)
		testutil.AssertNoError(t, err)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "password123", "newpass456", "newpass456")
		testutil.AssertNoError(t, err)

		_, err = svc.Authenticate(user.Username, "newpass456")
		testutil.AssertNoError(t, err)
		_, err = svc.Authenticate(user.Username, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "wrong", "newpass456", "newpass456")
		testutil.AssertAppError(t, err, "WRONG_PASSWORD")
	})

	t.Run("confirmation_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "password123", "newpass456", "different")
		testutil.AssertAppError(t, err, "PASSWORD_MISMATCH")
	})
}
