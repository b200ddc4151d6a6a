package configs

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintAppSecret prints a fresh signing secret suitable for the
// SECRET_KEY entry in .env.
func GenerateAndPrintAppSecret() error {
	secret := securecookie.GenerateRandomKey(64)
	if secret == nil {
		return fmt.Errorf("could not generate signing secret")
	}

	fmt.Println("Generated signing secret, add this to your .env file:")
	fmt.Printf("SECRET_KEY=%s\n", base64.URLEncoding.EncodeToString(secret))
	return nil
}
