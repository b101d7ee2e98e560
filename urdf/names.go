package urdf

// Paths maps link and joint names to scene paths. Links and joints are
// kept apart since URDF allows a link and a joint to share a name.
type Paths struct {
	Links  map[string]string
	Joints map[string]string
}

// Names places every joint under its parent link and every child link
// under its joint: /base/joint1/link1/joint2/link2. Links no joint names
// are placed at the root.
func Names(robot *Robot) Paths {
	p := Paths{
		Links:  make(map[string]string),
		Joints: make(map[string]string),
	}
	for _, joint := range robot.Joints {
		parent, ok := p.Links[joint.Parent.Link]
		if !ok {
			parent = "/" + joint.Parent.Link
			p.Links[joint.Parent.Link] = parent
		}
		jointPath := parent + "/" + joint.Name
		p.Joints[joint.Name] = jointPath
		p.Links[joint.Child.Link] = jointPath + "/" + joint.Child.Link
	}
	for _, link := range robot.Links {
		if _, ok := p.Links[link.Name]; !ok {
			p.Links[link.Name] = "/" + link.Name
		}
	}
	return p
}

// All returns every path once, links first, each group in document order.
func (p Paths) All(robot *Robot) []string {
	seen := make(map[string]bool)
	var all []string
	add := func(path string) {
		if path != "" && !seen[path] {
			seen[path] = true
			all = append(all, path)
		}
	}
	for _, link := range robot.Links {
		add(p.Links[link.Name])
	}
	for _, joint := range robot.Joints {
		add(p.Links[joint.Parent.Link])
		add(p.Links[joint.Child.Link])
	}
	for _, joint := range robot.Joints {
		add(p.Joints[joint.Name])
	}
	return all
}
