package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

// GenerateCode mints an opaque access code carrying the given role. The
// uuidv7 half makes every code unique; the role half is what the middleware
// checks. Codes are capabilities within one deployment, not credentials.
func GenerateCode(role string) string {
	uniqueID := uuidv7.New()

	code := fmt.Sprintf("%s|%s", role, uniqueID.String())

	return base64.StdEncoding.EncodeToString([]byte(code))
}

func Decode(code string) (role, uniqueID string, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
