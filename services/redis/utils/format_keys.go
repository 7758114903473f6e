package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatSearchKey(query string) string {
	return fmt.Sprintf("catalog:search:%s", query)
}

func FormatGameKey(gameID string) string {
	return fmt.Sprintf("catalog:game:%s", gameID)
}

func FormatVideosKey(gameID string, limit int) string {
	return fmt.Sprintf("catalog:videos:%s:%d", gameID, limit)
}

func FormatImagesKey(gameID string, limit int) string {
	return fmt.Sprintf("catalog:images:%s:%d", gameID, limit)
}
