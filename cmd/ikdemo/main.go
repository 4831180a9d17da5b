// Command ikdemo walks through the same sequence of solver calls as the
// reference kinematics core's usage example: initialize an engine for an
// LBR-iiwa-class arm, solve a target pose under three different option
// sets, then run forward kinematics on the last solution.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/Rish619/lbr-redundant-ik/kinematics"
	"github.com/Rish619/lbr-redundant-ik/logging"
	"github.com/Rish619/lbr-redundant-ik/spatialmath"
)

func main() {
	x := flag.Float64("x", 0.5, "target position x (m)")
	y := flag.Float64("y", -0.2, "target position y (m)")
	z := flag.Float64("z", 0.2, "target position z (m)")
	roll := flag.Float64("roll", 0.0, "target orientation roll (rad)")
	pitch := flag.Float64("pitch", math.Pi, "target orientation pitch (rad)")
	yaw := flag.Float64("yaw", math.Pi/2, "target orientation yaw (rad)")
	armAngle := flag.Float64("arm-angle", math.Pi/4, "fixed arm angle for the exact-psi demo (rad)")
	flag.Parse()

	logger := logging.NewLogger("ikdemo")

	limbs := kinematics.LimbLengths{Base: 0.34, UpperArm: 0.4, Forearm: 0.4, Flange: 0.126}
	engine := kinematics.NewEngine(limbs, logger)

	lower := kinematics.JointVector{-2.93215, -2.05949, -2.93215, -2.05949, -2.93215, -2.05949, -3.01942}
	upper := kinematics.JointVector{2.93215, 2.05949, 2.93215, 2.05949, 2.93215, 2.05949, 3.01942}
	vMax := kinematics.JointVector{1.7104, 1.7104, 1.7453, 2.2689, 2.4434, 3.1415, 3.1415}
	aMax := kinematics.JointVector{5.4444, 5.4444, 5.5555, 7.2222, 7.7777, 10.0, 10.0}
	if err := engine.SetJointLimits(lower, upper, vMax, aMax); err != nil {
		fmt.Fprintln(os.Stderr, "error: failed to initialize the kinematics solver:", err)
		os.Exit(1)
	}

	seed := kinematics.SeedState{Joints: kinematics.JointVector{0.0, 0.03, 0.0, -math.Pi / 2, 0.0, math.Pi / 2, 0.0}}
	pose := spatialmath.NewPoseFromRPY(*x, *y, *z, *roll, *pitch, *yaw)

	ctx := context.Background()

	opts := kinematics.NewDefaultOptions()
	opts.JointVelocityScalingFactor = 0.4
	opts.JointAccelerationScalingFactor = 0.4
	opts.DeltaT = 0.04
	solutions, status := engine.Inverse(ctx, pose, seed, opts)
	fmt.Println("solution with redundancy resolution based on weighted joint distance")
	printSolutions("result", status, solutions)

	opts.PositionIKMode = kinematics.ExactPsi
	opts.TargetArmAngle = *armAngle
	solutions, status = engine.Inverse(ctx, pose, seed, opts)
	fmt.Println("\nsolution with fixed arm angle")
	printSolutions("result", status, solutions)

	opts.GlobalConfigurationMode = kinematics.KeepCurrentGC
	solutions, status = engine.Inverse(ctx, pose, seed, opts)
	fmt.Println("\nsolution with fixed global configuration")
	printSolutions("result", status, solutions)

	if len(solutions) == 0 {
		fmt.Fprintln(os.Stderr, "error: no solution to run forward kinematics on")
		os.Exit(1)
	}
	fwd, fstatus := engine.Forward(solutions[0].Joints)
	fmt.Println("\nforward kinematics with solution from last inverse kinematics call")
	fmt.Printf("result %s, position: %v\n", fstatus.Message(), fwd.Pose.Point())
}

func printSolutions(label string, status kinematics.Status, solutions kinematics.Solutions) {
	if len(solutions) == 0 {
		fmt.Printf("%s %s, no solutions\n", label, status.Message())
		return
	}
	fmt.Printf("%s %s, values: %v\n", label, status.Message(), solutions[0].Joints)
}
