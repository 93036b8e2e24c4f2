package bot

import (
	"testing"

	"pgregory.net/rapid"

	"mafia-casino-bot/internal/config"
)

// TestAdminPermissionCheckProperty checks that a user is treated as an
// admin exactly when their id is in the configured admin list.
func TestAdminPermissionCheckProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAdmins := rapid.IntRange(1, 10).Draw(t, "numAdmins")
		adminIDs := make([]int64, numAdmins)
		for i := 0; i < numAdmins; i++ {
			adminIDs[i] = rapid.Int64Range(1, 1000000000).Draw(t, "adminID")
		}

		cfg := &config.Config{
			Admin: config.AdminConfig{IDs: adminIDs},
		}

		userID := rapid.Int64Range(1, 1000000000).Draw(t, "userID")
		isAdmin := cfg.IsAdmin(userID)

		expected := false
		for _, id := range adminIDs {
			if id == userID {
				expected = true
				break
			}
		}

		if isAdmin != expected {
			t.Fatalf("admin check mismatch: userID=%d, adminIDs=%v, expected=%v, got=%v",
				userID, adminIDs, expected, isAdmin)
		}
	})
}

// TestAdminPermissionCheckWithKnownAdminProperty checks that every
// listed admin is recognized.
func TestAdminPermissionCheckWithKnownAdminProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAdmins := rapid.IntRange(1, 10).Draw(t, "numAdmins")
		adminIDs := make([]int64, numAdmins)
		for i := 0; i < numAdmins; i++ {
			adminIDs[i] = rapid.Int64Range(1, 1000000000).Draw(t, "adminID")
		}

		cfg := &config.Config{
			Admin: config.AdminConfig{IDs: adminIDs},
		}

		adminIndex := rapid.IntRange(0, numAdmins-1).Draw(t, "adminIndex")
		if !cfg.IsAdmin(adminIDs[adminIndex]) {
			t.Fatalf("known admin ID %d should be recognized, adminIDs=%v", adminIDs[adminIndex], adminIDs)
		}
	})
}

// TestWhitelistEnforcementProperty checks that a group chat is allowed
// exactly when its id is whitelisted.
func TestWhitelistEnforcementProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numChats := rapid.IntRange(1, 10).Draw(t, "numChats")
		chatIDs := make([]int64, numChats)
		for i := 0; i < numChats; i++ {
			// Group chat IDs are typically negative
			chatIDs[i] = -rapid.Int64Range(1, 1000000000).Draw(t, "chatID")
		}

		cfg := &config.Config{
			Whitelist: config.WhitelistConfig{Chats: chatIDs},
		}

		testChatID := -rapid.Int64Range(1, 1000000000).Draw(t, "testChatID")
		isAllowed := cfg.IsChatAllowed(testChatID)

		expected := false
		for _, id := range chatIDs {
			if id == testChatID {
				expected = true
				break
			}
		}

		if isAllowed != expected {
			t.Fatalf("whitelist check mismatch: chatID=%d, whitelist=%v, expected=%v, got=%v",
				testChatID, chatIDs, expected, isAllowed)
		}
	})
}

// TestEmptyWhitelistAllowsAllChats checks the open-by-default rule: an
// empty whitelist admits every chat.
func TestEmptyWhitelistAllowsAllChats(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := &config.Config{}
		chatID := -rapid.Int64Range(1, 1000000000).Draw(t, "chatID")
		if !cfg.IsChatAllowed(chatID) {
			t.Fatalf("empty whitelist should allow chat %d", chatID)
		}
	})
}
