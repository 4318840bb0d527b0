// 探针工具：命令行给定坐标，走完整解析链路并输出 JSON，便于验证密钥与连通性
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"dine-api/internal/amap"
	"dine-api/internal/geocache"
	"dine-api/internal/locate"
	"dine-api/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: regeo-probe <lng> <lat> [style]")
		os.Exit(2)
	}
	lng, err1 := strconv.ParseFloat(os.Args[1], 64)
	lat, err2 := strconv.ParseFloat(os.Args[2], 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(os.Stderr, "bad coordinate")
		os.Exit(2)
	}
	key := os.Getenv("AMAP_KEY")
	if key == "" {
		l.Error("amap_key_missing")
		os.Exit(1)
	}
	cli := amap.New(key, &http.Client{Timeout: 5 * time.Second})
	rv := locate.NewResolver(&locate.StaticPositioner{Lng: lng, Lat: lat}, geocache.New(0), cli)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := rv.ResolveCurrent(ctx)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
	if res.Success && len(os.Args) > 3 {
		fmt.Println(locate.FormatAddress(&res.AddressRecord, os.Args[3]))
	}
	if !res.Success {
		os.Exit(1)
	}
}
