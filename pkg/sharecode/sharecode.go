// Package sharecode builds the opaque codes embedded in shareable match
// links. A code carries the match ID plus a fresh uuidv7, so two shares of
// the same match produce distinct links.
package sharecode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

func Generate(matchID string) string {
	code := fmt.Sprintf("%s|%s", matchID, uuidv7.New().String())
	return base64.URLEncoding.EncodeToString([]byte(code))
}

func Decode(code string) (matchID, token string, err error) {
	decoded, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return parts[0], parts[1], nil
}
