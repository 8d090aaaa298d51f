package id

import (
	"crypto/rand"
	"encoding/base64"
)

/**
 * @file: token.go
 * @description: opaque security tokens
 */

const defaultTokenBytes = 32

// SecureToken 生成不可猜测的不透明令牌，URL 安全，无语义编码。
// n 为随机字节数，小于等于 0 时使用默认值。
func SecureToken(n int) string {
	if n <= 0 {
		n = defaultTokenBytes
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 失败说明运行环境已不可用
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
