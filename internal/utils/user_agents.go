package utils

import (
	"fmt"

	"github.com/avct/uasurfer"
)

// UserAgentDetails is the browser, OS and device class parsed from a User-Agent header.
type UserAgentDetails struct {
	BrowserName    string
	BrowserVersion string
	OSName         string
	OSVersion      string
	DeviceType     string
}

func ParseUserAgent(userAgent string) UserAgentDetails {
	parsed := uasurfer.Parse(userAgent)

	return UserAgentDetails{
		BrowserName:    parsed.Browser.Name.String(),
		BrowserVersion: UserAgentVersionToString(parsed.Browser.Version),
		OSName:         parsed.OS.Name.String(),
		OSVersion:      UserAgentVersionToString(parsed.OS.Version),
		DeviceType:     parsed.DeviceType.String(),
	}
}

func UserAgentVersionToString(v uasurfer.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
