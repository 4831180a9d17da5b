package kinematics

// GlobalConfigurationMode selects how Inverse chooses which of the eight
// global configurations to solve.
type GlobalConfigurationMode int

const (
	// KeepCurrentGC restricts the search to the seed's own global
	// configuration.
	KeepCurrentGC GlobalConfigurationMode = iota
	// SelectBySeedGC tries every global configuration and returns the one
	// closest to the seed by the weighted joint-distance metric.
	SelectBySeedGC
	// SpecifyGC restricts the search to Options.UserGC.
	SpecifyGC
	// ReturnAllGC returns one solution per feasible global configuration,
	// sorted by distance to the seed.
	ReturnAllGC
)

// PositionIKMode selects how Inverse picks an arm angle within a global
// configuration's feasible interval(s).
type PositionIKMode int

const (
	// ExactPsi uses Options.TargetArmAngle and fails with
	// NoSolutionForArmAngle in a global configuration whose feasible
	// intervals do not contain it; a feasible angle outside the seed's
	// interval is returned with an ArmAngleNotInSameInterval warning.
	ExactPsi PositionIKMode = iota
	// ClosestFeasiblePsi picks the feasible arm angle closest to
	// Options.TargetArmAngle (0 when the field is left at its zero value).
	ClosestFeasiblePsi
	// ResolvePsi picks the feasible arm angle that minimizes the weighted
	// joint-distance metric against the seed, subject to the time-optimal
	// step scaler.
	ResolvePsi
)

// Options configures a single Inverse or InverseArmAngle call. A caller can
// start from NewDefaultOptions and override only the fields that matter.
type Options struct {
	GlobalConfigurationMode GlobalConfigurationMode `json:"global_configuration_mode"`
	UserGC                  GlobalConfig             `json:"user_gc"`
	PositionIKMode          PositionIKMode           `json:"position_ik_mode"`
	TargetArmAngle          float64                  `json:"target_arm_angle"`
	JointVelocityScalingFactor     float64           `json:"joint_velocity_scaling_factor"`
	JointAccelerationScalingFactor float64           `json:"joint_acceleration_scaling_factor"`
	DeltaT                  float64                  `json:"delta_t"`
	JointDistanceWeights    JointVector              `json:"joint_distance_weights"`
}

// NewDefaultOptions returns the Options a caller gets by not customizing
// anything: resolve psi by seed distance across every global configuration,
// full-rate time scaling, and uniform joint-distance weights.
func NewDefaultOptions() Options {
	weights := JointVector{}
	for i := range weights {
		weights[i] = 1
	}
	return Options{
		GlobalConfigurationMode:        SelectBySeedGC,
		PositionIKMode:                 ResolvePsi,
		JointVelocityScalingFactor:     1,
		JointAccelerationScalingFactor: 1,
		DeltaT:                         1,
		JointDistanceWeights:           weights,
	}
}
