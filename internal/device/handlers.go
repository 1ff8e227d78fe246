package device

import (
	"fmt"

	"github.com/bucko909/powerpod/internal/command"
	"github.com/bucko909/powerpod/internal/newton"
)

// Dispatch decodes the request payload for id, applies its effect to
// s, and returns the encoded response payload (nil if id has no
// response). It is the device-side counterpart of hostdriver.DoCommand.
func Dispatch(s *State, id command.ID, payload []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch id {
	case command.UploadFirmware:
		// Payload format undocumented; accepted and ignored.
		return nil, nil

	case command.SetTime:
		if _, err := command.DecodeSetTimeRequest(payload); err != nil {
			return nil, err
		}
		return nil, nil

	case command.EraseAll:
		s.Rides = nil
		return nil, nil

	case command.GetSpaceUsage:
		return command.GetSpaceUsageResponse{UsedPercentage: command.SpaceUsagePercent}.Encode(), nil

	case command.GetSerialNumber:
		return command.GetSerialNumberResponse{SerialNumber: s.SerialNumber}.Encode(), nil

	case command.SetUnits:
		req, err := command.DecodeSetUnitsRequest(payload)
		if err != nil {
			return nil, err
		}
		s.UnitsType = req.UnitsType
		return nil, nil

	case command.SetOdometer:
		req, err := command.DecodeSetOdometerRequest(payload)
		if err != nil {
			return nil, err
		}
		s.OdometerTenthsKm = req.TenthsKm
		return nil, nil

	case command.SetSampleRate:
		if _, err := command.DecodeSetSampleRateRequest(payload); err != nil {
			return nil, err
		}
		return nil, nil

	case command.GetOdometer:
		return command.GetOdometerResponse{
			UnitsType:        s.UnitsType,
			One:              1,
			Zero:             0,
			OdometerTenthsKm: s.OdometerTenthsKm,
		}.Encode(), nil

	case command.GetFirmwareVersion:
		return command.GetFirmwareVersionResponse{Encoded: command.EncodeFirmwareVersion(s.FirmwareVersion)}.Encode(), nil

	case command.SetTrainerWeights:
		if _, err := command.DecodeSetTrainerWeightsRequest(payload); err != nil {
			return nil, err
		}
		return nil, nil

	case command.SetIntervals:
		if _, err := command.DecodeSetIntervalsRequest(payload); err != nil {
			return nil, err
		}
		return nil, nil

	case command.SetProfileData:
		req, err := command.DecodeSetProfileDataRequest(payload)
		if err != nil {
			return nil, err
		}
		if int(s.CurrentProfile) >= len(s.Profiles) {
			return nil, fmt.Errorf("device: current profile %d out of range", s.CurrentProfile)
		}
		req.ApplyTo(&s.Profiles[s.CurrentProfile])
		return nil, nil

	case command.GetProfileNumber:
		return command.GetProfileNumberResponse{Number: s.CurrentProfile}.Encode(), nil

	case command.SetProfileNumber:
		req, err := command.DecodeSetProfileNumberRequest(payload)
		if err != nil {
			return nil, err
		}
		if int(req.Number) < 0 || int(req.Number) >= len(s.Profiles) {
			return nil, fmt.Errorf("device: SetProfileNumber: %d out of range", req.Number)
		}
		s.CurrentProfile = req.Number
		return nil, nil

	case command.SetProfileData2:
		req, err := command.DecodeSetProfileData2Request(payload)
		if err != nil {
			return nil, err
		}
		if int(s.CurrentProfile) >= len(s.Profiles) {
			return nil, fmt.Errorf("device: current profile %d out of range", s.CurrentProfile)
		}
		p := &s.Profiles[s.CurrentProfile]
		p.PowerSmoothingSeconds = req.PowerSmoothingSeconds
		p.UnknownC = req.UnknownC
		return nil, nil

	case command.GetProfileData:
		var resp command.GetProfileDataResponse
		copy(resp.Profiles[:], s.Profiles[:])
		return resp.Encode(), nil

	case command.GetFile:
		req, err := command.DecodeGetFileRequest(payload)
		if err != nil {
			return nil, err
		}
		if int(req.Index) < 0 || int(req.Index) >= len(s.Rides) {
			return nil, fmt.Errorf("device: GetFile: index %d out of range (%d rides)", req.Index, len(s.Rides))
		}
		return command.GetFileResponse{Ride: s.Rides[req.Index]}.Encode(), nil

	case command.GetFileList:
		headers := make([]newton.RideHeader, 0, len(s.Rides))
		for _, r := range s.Rides {
			headers = append(headers, r.Header())
		}
		return command.GetFileListResponse{Headers: headers}.Encode(), nil

	case command.Unknown:
		return command.DefaultUnknownResponse().Encode(), nil

	case command.SetScreens:
		req, err := command.DecodeSetScreensRequest(payload)
		if err != nil {
			return nil, err
		}
		if int(s.CurrentProfile) >= len(s.Screens) {
			return nil, fmt.Errorf("device: current profile %d out of range", s.CurrentProfile)
		}
		s.Screens[s.CurrentProfile] = req.Screens
		return nil, nil

	case command.GetAllScreens:
		var resp command.GetAllScreensResponse
		copy(resp.Screens[:], s.Screens[:])
		return resp.Encode(), nil

	default:
		return nil, fmt.Errorf("device: no handler for command %s", id)
	}
}
