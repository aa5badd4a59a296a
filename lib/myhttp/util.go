package myhttp

import (
	"fmt"
	"os"
)

// GuessHostnameWithScheme derives the URL on which this process can be
// reached, used when registering pubsub push-endpoints.
func GuessHostnameWithScheme() string {
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project != "" {
		return fmt.Sprintf("https://%s.appspot.com", project)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return fmt.Sprintf("http://localhost:%s", port)
}
