// Package command implements the PowerPod's closed catalog of 22
// commands: each command's identifier byte, request decoding, and
// response encoding, plus a dispatcher from identifier to handler.
package command

import "fmt"

// ID identifies one command in the catalog.
type ID byte

const (
	UploadFirmware     ID = 0x01
	SetTime            ID = 0x04
	EraseAll           ID = 0x07
	GetSpaceUsage      ID = 0x08
	GetSerialNumber    ID = 0x09
	SetUnits           ID = 0x0A
	SetOdometer        ID = 0x0B
	SetSampleRate      ID = 0x0C
	GetOdometer        ID = 0x0D
	GetFirmwareVersion ID = 0x0E
	SetTrainerWeights  ID = 0x14
	SetIntervals       ID = 0x19
	SetProfileData     ID = 0x1A
	GetProfileNumber   ID = 0x1C
	SetProfileNumber   ID = 0x1D
	SetProfileData2    ID = 0x1E
	GetProfileData     ID = 0x1F
	GetFile            ID = 0x20
	GetFileList        ID = 0x21
	Unknown            ID = 0x22
	SetScreens         ID = 0x29
	GetAllScreens      ID = 0x2A
)

var names = map[ID]string{
	UploadFirmware:     "UploadFirmware",
	SetTime:            "SetTime",
	EraseAll:           "EraseAll",
	GetSpaceUsage:      "GetSpaceUsage",
	GetSerialNumber:    "GetSerialNumber",
	SetUnits:           "SetUnits",
	SetOdometer:        "SetOdometer",
	SetSampleRate:      "SetSampleRate",
	GetOdometer:        "GetOdometer",
	GetFirmwareVersion: "GetFirmwareVersion",
	SetTrainerWeights:  "SetTrainerWeights",
	SetIntervals:       "SetIntervals",
	SetProfileData:     "SetProfileData",
	GetProfileNumber:   "GetProfileNumber",
	SetProfileNumber:   "SetProfileNumber",
	SetProfileData2:    "SetProfileData2",
	GetProfileData:     "GetProfileData",
	GetFile:            "GetFile",
	GetFileList:        "GetFileList",
	Unknown:            "UnknownCommand",
	SetScreens:         "SetScreens",
	GetAllScreens:      "GetAllScreens",
}

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("ID(%#02x)", byte(id))
}

// HasResponse reports whether id elicits a typed response payload, as
// opposed to a bare completion ack.
func HasResponse(id ID) bool {
	switch id {
	case GetSpaceUsage, GetSerialNumber, GetOdometer, GetFirmwareVersion,
		GetProfileNumber, GetProfileData, GetFile, GetFileList, Unknown, GetAllScreens:
		return true
	default:
		return false
	}
}
