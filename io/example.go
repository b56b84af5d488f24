package io

const (
	ExampleWellsFile = `[Sweep]

#######################
# Required Parameters #
#######################

# System must be one of [ Wells | ThreeBody ]. Wells launches a test particle
# from every pixel of the image and records which well it hits first.
System = Wells

#######################
# Optional Parameters #
#######################

# Integration method, one of [ RK4 | Euler ]. Default is RK4.
# Method = RK4

# Directory which output files will be written to. Default is the current
# directory. Output file names are built from the method, the initial
# velocity and the camera, e.g. gravity_wells_rk4_0.0_0.0_0.0_0.0_1.00.png.
# Output = path/to/output/dir
# PrependName = pre_
# AppendName = _app

# Initial velocity of the test particle.
# VelX = 0
# VelY = 0

# Camera. Pixel (px, py) starts the particle at (px, py)/Zoom - Offset.
# OffsetX = 0
# OffsetY = 0
# Zoom = 1

# Image size in pixels. Default is 600 x 600.
# Width = 600
# Height = 600

# Physical constants. Defaults are G = 100, a particle of mass and radius 1
# and a collision threshold of 15 between the particle and a well's center.
# G = 100
# Threshold = 15
# ParticleMass = 1
# ParticleRadius = 1

# Time discretization. Collisions are checked after every substep but are
# reported in units of timesteps.
# Timesteps = 2000
# Substeps = 10
# FrameTime = 0.016

# Wells can also be read from a whitespace-separated table with the columns
# x y mass radius r g b. A radius of 0 is replaced by max(sqrt(mass/1000), 10).
# Wells = path/to/wells.txt

# Number of timesteps between recorded trajectory points in -Replay and -View.
# SampleRate = 5

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out

# Wells are indexed in order of their names. If no wells are given, the three
# wells below are used. Colors are hex codes and must be quoted, since '#'
# starts a comment.

[Well "a_red"]
X = 150
Y = 150
Mass = 50000
Color = "#ff6464"

[Well "b_green"]
X = 450
Y = 150
Mass = 30000
Color = "#64ff64"

[Well "c_blue"]
X = 300
Y = 400
Mass = 40000
Color = "#6464ff"
# Radius = 10`

	ExampleThreeBodyFile = `[Sweep]

#######################
# Required Parameters #
#######################

# The ThreeBody system integrates a set of mutually attracting bodies and
# records the first pair that touches. Pairs are numbered (0, 1), (0, 2),
# (1, 2), ... in the order of the bodies' names.
System = ThreeBody

#######################
# Optional Parameters #
#######################

# Method = RK4
# Output = path/to/output/dir

# Image size in pixels. Default is 400 x 400.
# Width = 400
# Height = 400

# By default the image sweeps the y-velocity of body 0 over [0, 80] along x
# and the y-velocity of body 1 over [-80, 0] along y. Any two fields can be
# swept instead. Fields must be one of [ PosX | PosY | VelX | VelY ] and both
# axes must be set together. Endpoints are included.
# XBody = 0
# XField = VelY
# XMin = 0
# XMax = 80
# YBody = 1
# YField = VelY
# YMin = -80
# YMax = 0

# G = 1
# Timesteps = 1000
# Substeps = 50
# FrameTime = 0.016

# ProfileFile = prof.out
# LogFile = log.out

[Body "a"]
X = 50
Y = 0
Mass = 160000
# VelX = 0
# VelY = 0
# Radius = 1

[Body "b"]
X = -50
Y = 0
Mass = 160000

[Body "c"]
X = 0
Y = 0
Mass = 160000`
)
