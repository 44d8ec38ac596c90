package util

import (
	"os/exec"
	"runtime"
)

// browserCommands 各平台依次尝试的打开命令
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 调用 url.dll 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"sensible-browser", url},
			{"google-chrome", url},
			{"firefox", url},
		}
	}
}

// OpenBrowser 用默认浏览器打开 url，直到有一个命令启动成功
func OpenBrowser(url string) error {
	var firstErr error
	for _, argv := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(argv[0], argv[1:]...).Start()
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
