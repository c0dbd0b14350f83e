package core

// DefaultSnapshot returns the bootstrap catalog used when no snapshot
// file exists yet: the six classic alert sources with their field lists
// and per-source defaults.
func DefaultSnapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Put("SIEM_Alert", SourceSnapshot{
		Fields: []string{
			"severity", "description", "affectedUser", "sourceIP", "destinationIP",
			"protocol", "sourcePort", "destinationPort", "deviceAction", "targetResource",
		},
		Settings: map[string]string{"default_severity": "Medium"},
	})
	snap.Put("Login_Alert", SourceSnapshot{
		Fields: []string{
			"loginStatus", "username", "sourceIP", "userAgent",
			"authenticationMethod", "failureReason", "loginTimestamp",
		},
		Settings: map[string]string{"default_status": "Success"},
	})
	snap.Put("Smart_Fence_Alert", SourceSnapshot{
		Fields: []string{
			"fenceId", "segmentId", "alertType", "status", "detectionTimestamp", "sensorData",
		},
		Settings: map[string]string{"default_status": "Breached"},
	})
	snap.Put("Location_Based_Alert", SourceSnapshot{
		Fields: []string{
			"userId", "deviceId", "locationDescription", "latitude", "longitude",
			"trigger", "speed", "altitude", "accuracy",
		},
		Settings: map[string]string{"default_user": "Unknown"},
	})
	snap.Put("Motion_Sensor_Alert", SourceSnapshot{
		Fields: []string{
			"itemId", "location", "status", "detectionTimestamp", "sensitivityLevel",
		},
		Settings: map[string]string{"default_status": "Detected"},
	})
	snap.Put("IR_Sensor_Alert", SourceSnapshot{
		Fields: []string{
			"itemId", "location", "status", "beamStatusTimestamp", "beamStrength",
		},
		Settings: map[string]string{"default_status": "Detected"},
	})
	return snap
}
