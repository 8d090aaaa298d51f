package id

import "github.com/teris-io/shortid"

// ShortId 生成 URL 安全的短ID，用作请求标识
func ShortId() string {
	id, err := shortid.Generate()
	if err != nil {
		return ""
	}
	return id
}
