package filebase

import "encoding/base64"

// bearerToken derives the bucket-scoped pin-API token:
// base64("api_key:secret_key:bucket"). The bucket string is used exactly as
// supplied by the caller; the token is case-sensitive even though the object
// store folds bucket names to lower case.
func bearerToken(apiKey, secretKey, bucket string) string {
	return base64.StdEncoding.EncodeToString([]byte(apiKey + ":" + secretKey + ":" + bucket))
}
