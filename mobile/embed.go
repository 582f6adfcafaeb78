//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 data/flight.yaml 复制到此目录：
//
//	mkdir -p mobile/data && cp data/flight.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/flight.yaml
var dataFS embed.FS
