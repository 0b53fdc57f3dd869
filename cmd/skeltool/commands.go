package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-skel/internal/assets"
	"github.com/Faultbox/midgard-skel/internal/config"
	"github.com/Faultbox/midgard-skel/internal/engine/camera"
	"github.com/Faultbox/midgard-skel/internal/engine/debug"
	"github.com/Faultbox/midgard-skel/internal/logger"
	"github.com/Faultbox/midgard-skel/internal/sim"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/formats"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// poseFlags are shared by the commands that evaluate a pose.
type poseFlags struct {
	config string
	clip   string
	time   float64
	mode   string
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (p *poseFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.config, "config", "", "Config file for defaults")
	fs.StringVar(&p.clip, "clip", "", "Clip to sample (default: first clip)")
	fs.Float64Var(&p.time, "t", 0, "Normalized clip time")
	fs.StringVar(&p.mode, "mode", "", "Pose mode (default: from config)")
}

// loadRig loads the rig named by the first positional argument, or the
// built-in mannequin.
func loadRig(fs *flag.FlagSet) (*formats.Rig, error) {
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
	}
	return assets.NewManager().LoadRig(fs.Arg(0))
}

// evaluate builds a paused simulation, seeks the clip and evaluates one
// frame. drawer may be nil.
func evaluate(cfg *config.Config, rig *formats.Rig, pf poseFlags, drawer anim.LineDrawer) (*sim.Simulation, error) {
	opts, err := sim.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if pf.mode != "" {
		if opts.Mode, err = anim.ParseMode(pf.mode); err != nil {
			return nil, err
		}
	}
	if pf.clip != "" {
		opts.Clips = []string{pf.clip}
	}
	opts.CrossFade.Auto = false
	opts.Paused = true
	opts.Seed = 1

	s, err := sim.New(opts, rig, rig, drawer, nil, logger.Named("skeltool"))
	if err != nil {
		return nil, err
	}
	if clips := s.Clips(); len(clips) > 0 {
		var p anim.PlaybackState
		p.Seek(float32(pf.time), clips[0].KeyframeCount)
		s.Director().SetPlayback(0, p)
	}
	s.Update(0)
	return s, nil
}

func loadConfig(path string) (*config.Config, error) {
	return config.LoadFile(path)
}

func cmdInfo(w io.Writer, args []string) error {
	fs := newFlagSet("info", w)
	cfgPath := fs.String("config", "", "Config file for defaults")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	rig, err := loadRig(fs)
	if err != nil {
		return err
	}

	bm := anim.NewBoneMap(rig, cfg.Rig.ExcludePrefix)
	skel, err := anim.NewSkeleton(rig, bm)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Rig:      %s\n", rig.Name)
	fmt.Fprintf(w, "Bones:    %d (%d raw)\n", skel.BoneCount(), bm.RawLen())
	if ex := bm.Excluded(); len(ex) > 0 {
		fmt.Fprintf(w, "Excluded: %s\n", strings.Join(ex, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Hierarchy:")
	for i, b := range skel.Bones {
		pos := skel.BindModel[i].Position
		fmt.Fprintf(w, "  %3d %s%-*s (%.3f, %.3f, %.3f)\n",
			i, strings.Repeat("  ", skel.Depth(i)), 16-2*skel.Depth(i), b.Name, pos.X, pos.Y, pos.Z)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Clips:")
	for _, name := range rig.ClipNames() {
		clip, err := anim.NewClip(name, rig, skel)
		if err != nil {
			fmt.Fprintf(w, "  %-12s error: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "  %-12s %d keyframes", name, clip.KeyframeCount)
		if n := clip.MissingCount(); n > 0 {
			fmt.Fprintf(w, ", %d bones without data", n)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func cmdPose(w io.Writer, args []string) error {
	fs := newFlagSet("pose", w)
	var pf poseFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(pf.config)
	if err != nil {
		return err
	}
	rig, err := loadRig(fs)
	if err != nil {
		return err
	}
	s, err := evaluate(cfg, rig, pf, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Mode: %s\n", s.Mode())
	for i, t := range s.Pose() {
		axis, angle := t.Rotation.AxisAngle()
		fmt.Fprintf(w, "%-16s pos (%8.4f, %8.4f, %8.4f)  rot %7.2f deg about (%.3f, %.3f, %.3f)\n",
			s.Skeleton().Bones[i].Name,
			t.Position.X, t.Position.Y, t.Position.Z,
			angle*180/math32.Pi, axis.X, axis.Y, axis.Z)
	}
	return nil
}

func cmdSkin(w io.Writer, args []string) error {
	fs := newFlagSet("skin", w)
	var pf poseFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(pf.config)
	if err != nil {
		return err
	}
	rig, err := loadRig(fs)
	if err != nil {
		return err
	}
	s, err := evaluate(cfg, rig, pf, nil)
	if err != nil {
		return err
	}

	for i, m := range s.Skinning() {
		fmt.Fprintf(w, "%s\n", s.Skeleton().Bones[i].Name)
		// rows of a column-major matrix
		for r := 0; r < 4; r++ {
			fmt.Fprintf(w, "  [%8.4f %8.4f %8.4f %8.4f]\n", m[r], m[4+r], m[8+r], m[12+r])
		}
	}
	return nil
}

func cmdSnapshot(w io.Writer, args []string) error {
	fs := newFlagSet("snapshot", w)
	var pf poseFlags
	pf.register(fs)
	out := fs.String("o", "", "Output file (.png, .bmp, .webp)")
	width := fs.Int("w", 0, "Width in pixels (default: from config)")
	height := fs.Int("h", 0, "Height in pixels (default: from config)")
	ss := fs.Int("ss", 2, "Supersampling factor")
	grid := fs.Bool("grid", true, "Draw the floor grid")
	bounds := fs.Bool("bounds", false, "Draw the pose bounding box")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("snapshot needs -o <file>")
	}

	cfg, err := loadConfig(pf.config)
	if err != nil {
		return err
	}
	if *width > 0 {
		cfg.Snapshot.Width = *width
	}
	if *height > 0 {
		cfg.Snapshot.Height = *height
	}
	rig, err := loadRig(fs)
	if err != nil {
		return err
	}

	// frame the bind pose so every time sample shares the camera
	bind, err := evaluate(cfg, rig, poseFlags{mode: anim.ModeBindPose.String()}, nil)
	if err != nil {
		return err
	}
	offset := vec3(cfg.View.SkeletonOffset)
	lo, hi := anim.PoseBounds(bind.Pose())
	cam := camera.NewOrbitCamera()
	cam.FitPoints([]math.Vec3{lo.Add(offset), hi.Add(offset)})

	canvas := debug.NewCanvas(cfg.Snapshot.Width, cfg.Snapshot.Height,
		cam.Projector(cfg.Snapshot.Width, cfg.Snapshot.Height),
		debug.CanvasOptions{
			Background:  color(cfg.Snapshot.Background, anim.Color{}),
			LineWidth:   cfg.Snapshot.LineWidth,
			Supersample: *ss,
		})
	if *grid {
		g := debug.NewFloorGrid(2, 0.25)
		g.Center = math.Vec3{Y: offset.Y}
		g.Draw(canvas)
	}

	s, err := evaluate(cfg, rig, pf, canvas)
	if err != nil {
		return err
	}
	if *bounds {
		debug.DrawPoseBounds(canvas, s.Pose(), offset, anim.White)
	}

	if err := canvas.Save(*out); err != nil {
		return err
	}
	logger.Debug("snapshot written", zap.String("path", *out), zap.Int("lines", canvas.Lines()))
	fmt.Fprintf(w, "Wrote %s (%dx%d, %d lines)\n", *out, cfg.Snapshot.Width, cfg.Snapshot.Height, canvas.Lines())
	return nil
}

func cmdExport(w io.Writer, args []string) error {
	fs := newFlagSet("export", w)
	out := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rig, err := loadRig(fs)
	if err != nil {
		return err
	}
	data, err := rig.Marshal()
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	fmt.Fprintf(w, "Wrote %s (%d bones, %d clips)\n", *out, rig.SkeletonBoneCount(), len(rig.ClipNames()))
	return nil
}

func vec3(v []float32) math.Vec3 {
	if len(v) != 3 {
		return math.Vec3{}
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func color(v []float32, fallback anim.Color) anim.Color {
	if len(v) != 3 {
		return fallback
	}
	return anim.Color{R: v[0], G: v[1], B: v[2]}
}
