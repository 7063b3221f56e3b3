package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommand 各平台打开 URL 的默认命令
func browserCommand(goos, url string) []string {
	switch goos {
	case "windows":
		// rundll32 比 cmd /c start 更稳定
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	case "darwin":
		return []string{"open", url}
	default:
		return []string{"xdg-open", url}
	}
}

// fallbackCommands 默认命令失败后依次尝试的命令
func fallbackCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{{"explorer", url}}
	case "linux":
		browsers := []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
		out := make([][]string, 0, len(browsers))
		for _, b := range browsers {
			out = append(out, []string{b, url})
		}
		return out
	}
	return nil
}

// OpenBrowser 打开默认浏览器
func OpenBrowser(url string) error {
	args := browserCommand(runtime.GOOS, url)
	return exec.Command(args[0], args[1:]...).Start()
}

// OpenBrowserWithFallback 带降级方案的浏览器打开
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}
	for _, args := range fallbackCommands(runtime.GOOS, url) {
		if exec.Command(args[0], args[1:]...).Start() == nil {
			return nil
		}
	}
	return err
}

// LocalURL 本地服务访问地址
func LocalURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
