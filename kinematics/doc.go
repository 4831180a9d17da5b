// Package kinematics implements the closed-form inverse-kinematics engine
// for a 7-DOF spherical-shoulder / revolute-elbow / spherical-wrist (S-R-S)
// redundant manipulator. The one-dimensional self-motion of the arm is
// parameterised by a scalar arm angle psi in [-pi, pi]; the engine maps
// joint box limits into blocked sub-arcs of psi, derives the complementary
// feasible intervals, and resolves redundancy across the eight discrete
// global configurations and the continuous psi axis using a seed state and
// a time-optimal step scaler.
package kinematics
