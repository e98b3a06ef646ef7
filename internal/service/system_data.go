package service

import (
	"os"
	"runtime"

	"github.com/MKhiriev/go-mobile-messaging/models"
)

// HostSystemData describes the host the client runs on.
func HostSystemData(sdkVersion, appVersion string) SystemDataFunc {
	return func() models.SystemData {
		hostname, _ := os.Hostname()
		return models.SystemData{
			SDKVersion:           sdkVersion,
			OS:                   runtime.GOOS,
			OSVersion:            runtime.Version(),
			DeviceManufacturer:   runtime.GOARCH,
			DeviceModel:          runtime.GOARCH,
			AppVersion:           appVersion,
			NotificationsEnabled: true,
			Language:             language(),
			DeviceName:           hostname,
		}
	}
}

func language() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "en"
}
