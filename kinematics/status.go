package kinematics

// Severity classifies a Status as informational, a recoverable warning, or
// an error the caller must treat as a failed call.
type Severity int

const (
	// SeverityOK marks a fully successful call.
	SeverityOK Severity = iota
	// SeverityWarning marks a call that produced a usable fallback result.
	SeverityWarning
	// SeverityError marks a call that produced no usable result.
	SeverityError
)

// Code enumerates the possible outcomes of an engine operation, equivalent
// to the reference core's status enum.
type Code int

const (
	// Success indicates a fully successful operation.
	Success Code = iota
	// TargetTooCloseToSingularity indicates psi is undefined (shoulder-
	// elbow-wrist collinear) or a pivot singularity guard interval was hit.
	TargetTooCloseToSingularity
	// JointLimitViolated indicates a computed joint value falls outside its
	// box limits, or the target pose is outside the arm's reach envelope.
	JointLimitViolated
	// NoSolutionForArmAngle indicates no feasible arm-angle interval exists
	// for the requested pose and global configuration.
	NoSolutionForArmAngle
	// ArmAngleNotInSameInterval indicates the requested psi is feasible but
	// not within the seed's feasible interval; a fallback psi is offered.
	ArmAngleNotInSameInterval
	// GeneralError indicates invalid input (NaN, non-unit quaternion,
	// inconsistent options) that makes the call a no-op.
	GeneralError
)

// Status is the result of a single engine operation: a code, its severity,
// and a human-readable message. Status is a value type returned alongside
// results; it is never used to unwind control flow and the engine never
// panics to surface it.
type Status struct {
	code    Code
	message string
}

// NewStatus builds a Status with an explicit message.
func NewStatus(code Code, message string) Status {
	return Status{code: code, message: message}
}

// OK builds a SUCCESS status with no message.
func OK() Status {
	return Status{code: Success}
}

// Code returns the status code.
func (s Status) Code() Code {
	return s.code
}

// Message returns the human-readable detail for this status.
func (s Status) Message() string {
	if s.message != "" {
		return s.message
	}
	return s.code.defaultMessage()
}

// Severity classifies the status.
func (s Status) Severity() Severity {
	switch s.code {
	case Success:
		return SeverityOK
	case ArmAngleNotInSameInterval:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// IsError reports whether the status severity is SeverityError.
func (s Status) IsError() bool {
	return s.Severity() == SeverityError
}

func (c Code) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case TargetTooCloseToSingularity:
		return "TARGET_TOO_CLOSE_TO_SINGULARITY"
	case JointLimitViolated:
		return "JOINT_LIMIT_VIOLATED"
	case NoSolutionForArmAngle:
		return "NO_SOLUTION_FOR_ARMANGLE"
	case ArmAngleNotInSameInterval:
		return "ARMANGLE_NOT_IN_SAME_INTERVAL"
	case GeneralError:
		return "GENERAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

func (c Code) defaultMessage() string {
	switch c {
	case Success:
		return "success"
	case TargetTooCloseToSingularity:
		return "target pose is too close to a kinematic singularity"
	case JointLimitViolated:
		return "a joint limit was violated"
	case NoSolutionForArmAngle:
		return "no feasible arm angle exists for this pose and configuration"
	case ArmAngleNotInSameInterval:
		return "requested arm angle is feasible but not in the seed's interval"
	case GeneralError:
		return "invalid input"
	default:
		return "unknown status"
	}
}
