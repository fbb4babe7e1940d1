package refframe

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers should match with errors.Is; every error
// the graph, registration and query paths return wraps one of these (the
// narrowed ErrUnknownParent/ErrUnknownAxes/ErrUnknownPoint also match
// ErrUnknownNode). LoadConfig's errors wrap viper's error instead.
var (
	// ErrDuplicateID is returned when a node ID is already registered in a graph.
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrDuplicateName is returned when a node name is already registered in a graph.
	ErrDuplicateName = errors.New("duplicate node name")
	// ErrUnknownNode is the umbrella for any reference to an unregistered node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownParent narrows ErrUnknownNode to a registration's parent reference.
	ErrUnknownParent = fmt.Errorf("unknown parent: %w", ErrUnknownNode)
	// ErrUnknownAxes narrows ErrUnknownNode to a reference to an axes node.
	ErrUnknownAxes = fmt.Errorf("unknown axes: %w", ErrUnknownNode)
	// ErrUnknownPoint narrows ErrUnknownNode to a reference to a point node.
	ErrUnknownPoint = fmt.Errorf("unknown point: %w", ErrUnknownNode)
	// ErrInvalidParent is returned for class-specific parentage violations
	// (e.g. an Inertial axes whose parent is not itself Inertial).
	ErrInvalidParent = errors.New("invalid parent for node class")
	// ErrMissingDcm is returned when a non-root Inertial or FixedOffset
	// node registered without a constant DCM (or a Rotating/Computable node
	// without its angle function/producer) is evaluated by a query.
	// AddInertial and AddFixedOffset do not check the DCM at registration.
	ErrMissingDcm = errors.New("missing dcm")
	// ErrInvalidSequence is returned for a rotation sequence outside the
	// closed 21-entry enumeration, or a two-vector sequence outside the
	// 6-entry pair enumeration.
	ErrInvalidSequence = errors.New("invalid rotation sequence")
	// ErrDimensionMismatch is returned for malformed vector/order arguments.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrAmbiguousEphemeris is returned when an EphemerisProvider reports
	// more than one (center, axes) pair for a target NAIF id.
	ErrAmbiguousEphemeris = errors.New("ambiguous ephemeris")
	// ErrDataGap is returned when an external provider cannot satisfy an epoch.
	ErrDataGap = errors.New("ephemeris data gap")
	// ErrNotUpdated is returned when an Updatable point is queried before
	// being stamped, at a different epoch, or above its stamped order.
	ErrNotUpdated = errors.New("updatable point not current")
	// ErrLightTimeNoConverge is returned when the light-time fixed-point
	// iteration fails to converge.
	ErrLightTimeNoConverge = errors.New("light-time iteration did not converge")
	// ErrOrderExceeded is returned when a query requests a derivative order
	// greater than the value a System/Rot/State was built with.
	ErrOrderExceeded = errors.New("requested derivative order exceeds system order")
)
