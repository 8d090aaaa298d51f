package id

import "github.com/rs/xid"

// GetXid 生成短小的全局唯一 ID，用于日志与请求标识
func GetXid() string {
	return xid.New().String()
}
