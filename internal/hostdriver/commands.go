package hostdriver

import (
	"github.com/bucko909/powerpod/internal/command"
	"github.com/bucko909/powerpod/internal/link"
	"github.com/bucko909/powerpod/internal/newton"
)

// SetTime sets the device's wall-clock time.
func SetTime(p *link.Protocol, t newton.Time) error {
	_, err := DoCommand(p, command.SetTime, command.SetTimeRequest{Flag: 1, Time: t}.Encode())
	return err
}

// EraseAll deletes every stored ride.
func EraseAll(p *link.Protocol) error {
	_, err := DoCommand(p, command.EraseAll, nil)
	return err
}

// GetSpaceUsage reports the device's storage usage percentage.
func GetSpaceUsage(p *link.Protocol) (command.GetSpaceUsageResponse, error) {
	return DoTypedCommand(p, command.GetSpaceUsage, nil, command.DecodeGetSpaceUsageResponse)
}

// GetSerialNumber reads the device's serial number.
func GetSerialNumber(p *link.Protocol) (command.GetSerialNumberResponse, error) {
	return DoTypedCommand(p, command.GetSerialNumber, nil, command.DecodeGetSerialNumberResponse)
}

// SetUnits selects English or Metric display units.
func SetUnits(p *link.Protocol, unitsType int16) error {
	_, err := DoCommand(p, command.SetUnits, command.SetUnitsRequest{UnitsType: unitsType}.Encode())
	return err
}

// SetOdometer sets the odometer, in tenths of a kilometre.
func SetOdometer(p *link.Protocol, tenthsKm int32) error {
	_, err := DoCommand(p, command.SetOdometer, command.SetOdometerRequest{TenthsKm: tenthsKm}.Encode())
	return err
}

// SetSampleRate configures the recording sample rate.
func SetSampleRate(p *link.Protocol, sampleRate int16) error {
	_, err := DoCommand(p, command.SetSampleRate, command.SetSampleRateRequest{SampleRate: sampleRate}.Encode())
	return err
}

// GetOdometer reads the current odometer and display units.
func GetOdometer(p *link.Protocol) (command.GetOdometerResponse, error) {
	return DoTypedCommand(p, command.GetOdometer, nil, command.DecodeGetOdometerResponse)
}

// GetFirmwareVersion reads the device's firmware version, decoded to
// a plain version number.
func GetFirmwareVersion(p *link.Protocol) (float64, error) {
	resp, err := DoTypedCommand(p, command.GetFirmwareVersion, nil, command.DecodeGetFirmwareVersionResponse)
	if err != nil {
		return 0, err
	}
	return command.DecodeFirmwareVersion(resp.Encoded), nil
}

// SetTrainerWeights configures the resistance-vs-speed polynomial.
func SetTrainerWeights(p *link.Protocol, a0, a1, a2, a3 float32) error {
	req := command.SetTrainerWeightsRequest{A0: a0, A1: a1, A2: a2, A3: a3}
	_, err := DoCommand(p, command.SetTrainerWeights, req.Encode())
	return err
}

// SetIntervals configures the structured-workout interval table.
func SetIntervals(p *link.Protocol, flag int8, records []command.IntervalRecord) error {
	req := command.SetIntervalsRequest{Flag: flag, Records: records}
	_, err := DoCommand(p, command.SetIntervals, req.Encode())
	return err
}

// SetProfileData merges patch into the current profile, leaving
// PowerSmoothingSeconds and UnknownC untouched (set via
// SetProfileData2).
func SetProfileData(p *link.Protocol, patch newton.Profile) error {
	req := command.SetProfileDataRequest{Patch: patch}
	_, err := DoCommand(p, command.SetProfileData, req.Encode())
	return err
}

// GetProfileNumber reads which profile is current.
func GetProfileNumber(p *link.Protocol) (int16, error) {
	resp, err := DoTypedCommand(p, command.GetProfileNumber, nil, command.DecodeGetProfileNumberResponse)
	return resp.Number, err
}

// SetProfileNumber selects the current profile.
func SetProfileNumber(p *link.Protocol, number int16) error {
	req := command.SetProfileNumberRequest{Number: number}
	_, err := DoCommand(p, command.SetProfileNumber, req.Encode())
	return err
}

// SetProfileData2 sets the two profile fields SetProfileData leaves
// untouched.
func SetProfileData2(p *link.Protocol, powerSmoothingSeconds uint16, unknownC int16) error {
	req := command.SetProfileData2Request{PowerSmoothingSeconds: powerSmoothingSeconds, UnknownC: unknownC}
	_, err := DoCommand(p, command.SetProfileData2, req.Encode())
	return err
}

// GetProfileData reads all four stored profiles.
func GetProfileData(p *link.Protocol) (command.GetProfileDataResponse, error) {
	return DoTypedCommand(p, command.GetProfileData, nil, command.DecodeGetProfileDataResponse)
}

// GetFile reads one complete ride by its GetFileList index.
func GetFile(p *link.Protocol, index int16) (newton.Ride, error) {
	req := command.GetFileRequest{Index: index}
	resp, err := DoTypedCommand(p, command.GetFile, req.Encode(), command.DecodeGetFileResponse)
	return resp.Ride, err
}

// GetFileList enumerates every stored ride.
func GetFileList(p *link.Protocol) ([]newton.RideHeader, error) {
	resp, err := DoTypedCommand(p, command.GetFileList, nil, command.DecodeGetFileListResponse)
	return resp.Headers, err
}

// SetScreens replaces the current profile's on-device screen layout.
func SetScreens(p *link.Protocol, screens newton.Screens) error {
	req := command.SetScreensRequest{Screens: screens}
	_, err := DoCommand(p, command.SetScreens, req.Encode())
	return err
}

// GetAllScreens reads every profile's screen layout.
func GetAllScreens(p *link.Protocol) ([4]newton.Screens, error) {
	resp, err := DoTypedCommand(p, command.GetAllScreens, nil, command.DecodeGetAllScreensResponse)
	return resp.Screens, err
}
