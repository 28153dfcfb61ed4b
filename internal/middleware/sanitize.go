package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextRawBody holds the sanitized request body for error logging.
const ContextRawBody = "rawBody"

// SanitizeBody strips object keys that start with '$' or contain '.'
// from JSON request bodies, the classic Mongo query-operator injection
// defense. Non-JSON and unparsable bodies pass through untouched; the
// binding layer reports those.
func SanitizeBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}

		var doc interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			c.Next()
			return
		}

		cleaned, err := json.Marshal(stripOperatorKeys(doc))
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			c.Next()
			return
		}

		c.Set(ContextRawBody, string(cleaned))
		c.Request.Body = io.NopCloser(bytes.NewReader(cleaned))
		c.Request.ContentLength = int64(len(cleaned))

		c.Next()
	}
}

func stripOperatorKeys(doc interface{}) interface{} {
	switch v := doc.(type) {
	case map[string]interface{}:
		for key, val := range v {
			if strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
				delete(v, key)
				continue
			}
			v[key] = stripOperatorKeys(val)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = stripOperatorKeys(item)
		}
		return v
	default:
		return doc
	}
}
